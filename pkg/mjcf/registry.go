package mjcf

import "github.com/Faultbox/robomjcf/pkg/robot"

// Material is a named RGBA material declaration. Alpha is always 1.
type Material struct {
	Name  string
	Color robot.Color
}

// AssetRegistry accumulates the meshes and materials referenced while a
// robot is exported. Create one per export; it must not be shared.
type AssetRegistry struct {
	meshes    []string
	meshSeen  map[string]bool
	materials []Material
	matIndex  map[string]int
}

// NewAssetRegistry returns an empty registry.
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{
		meshSeen: make(map[string]bool),
		matIndex: make(map[string]int),
	}
}

// RegisterMesh records a mesh file. Registering the same file again is a
// no-op.
func (r *AssetRegistry) RegisterMesh(file string) {
	if r.meshSeen[file] {
		return
	}
	r.meshSeen[file] = true
	r.meshes = append(r.meshes, file)
}

// RegisterMaterial records a material. When a name is registered twice the
// last color wins; the declaration keeps its first position.
func (r *AssetRegistry) RegisterMaterial(name string, color robot.Color) {
	if i, ok := r.matIndex[name]; ok {
		r.materials[i].Color = color
		return
	}
	r.matIndex[name] = len(r.materials)
	r.materials = append(r.materials, Material{Name: name, Color: color})
}

// Meshes returns the unique mesh files in registration order.
func (r *AssetRegistry) Meshes() []string {
	return append([]string(nil), r.meshes...)
}

// Materials returns one material per distinct name in registration order.
func (r *AssetRegistry) Materials() []Material {
	return append([]Material(nil), r.materials...)
}

// Len returns the number of declarations the asset section will contain.
func (r *AssetRegistry) Len() int {
	return len(r.meshes) + len(r.materials)
}

// emit writes the <asset> section.
func (r *AssetRegistry) emit(w *xmlWriter) {
	w.open("asset")
	for _, mesh := range r.meshes {
		w.leaf("mesh", attr{"file", mesh})
	}
	for _, m := range r.materials {
		w.leaf("material",
			attr{"name", m.Name},
			attr{"rgba", formatFloats(m.Color.R, m.Color.G, m.Color.B, 1)},
		)
	}
	w.close("asset")
}
