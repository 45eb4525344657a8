package record

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const voxelHalf = 0.35

// unit cube faces, outward CCW winding
var cubeFaces = [6]struct {
	n [3]float32
	v [4][3]float32
}{
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
}

// ExportGLB writes f as binary glTF, one small cube per lit voxel. The
// cube's layering axis (Z) becomes glTF's up axis. depth is the number of
// significant bits per channel and sets full intensity.
func ExportGLB(w io.Writer, f *voxel.Frame, depth uint) error {
	if depth == 0 || depth > 8 {
		depth = 8
	}
	full := float32(uint(1)<<depth - 1)

	var (
		positions [][3]float32
		normals   [][3]float32
		colors    [][4]float32
		indices   []uint32
	)
	const mid = float32(voxel.Size-1) / 2
	for z := 0; z < voxel.Size; z++ {
		for y := 0; y < voxel.Size; y++ {
			for x := 0; x < voxel.Size; x++ {
				c := f.Voxel(x, y, z)
				if c.IsBlack() {
					continue
				}
				center := [3]float32{float32(x) - mid, float32(z) - mid, mid - float32(y)}
				rgba := [4]float32{unit(c.R, full), unit(c.G, full), unit(c.B, full), 1}
				for _, face := range cubeFaces {
					base := uint32(len(positions))
					for _, v := range face.v {
						positions = append(positions, [3]float32{
							center[0] + v[0]*voxelHalf,
							center[1] + v[1]*voxelHalf,
							center[2] + v[2]*voxelHalf,
						})
						normals = append(normals, face.n)
						colors = append(colors, rgba)
					}
					indices = append(indices, base, base+1, base+2, base, base+2, base+3)
				}
			}
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "cube4 frame -> GLB"

	if len(positions) > 0 {
		posAccessor := modeler.WritePosition(doc, positions)
		normalAccessor := modeler.WriteNormal(doc, normals)
		colorAccessor := modeler.WriteColor(doc, colors)
		indicesAccessor := modeler.WriteIndices(doc, indices)

		prim := &gltf.Primitive{
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION: posAccessor,
				gltf.NORMAL:   normalAccessor,
				gltf.COLOR_0:  colorAccessor,
			},
			Indices:  gltf.Index(indicesAccessor),
			Material: gltf.Index(0),
		}
		pbr := &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		}
		doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}
		doc.Meshes = []*gltf.Mesh{{Name: "Voxels", Primitives: []*gltf.Primitive{prim}}}
		doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

func unit(v uint8, full float32) float32 {
	u := float32(v) / full
	if u > 1 {
		return 1
	}
	return u
}
