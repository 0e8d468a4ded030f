package model

import (
	"encoding/binary"
	"io"
)

// BuildBuffers packs meshes into shared interleaved vertex and index arrays.
// Missing texture coordinates become (0, 0). Missing normals become zero
// unless opts.GenerateNormals is set.
func BuildBuffers(opts BuildOptions, meshes ...*Mesh) *Buffers {
	numVertices, numIndices := 0, 0
	for _, m := range meshes {
		numVertices += len(m.positions)
		numIndices += len(m.faces) * 3
	}

	b := &Buffers{
		Vertices: make([]Vertex, 0, numVertices),
		Indices:  make([]uint32, 0, numIndices),
		Ranges:   make([]DrawRange, 0, len(meshes)),
	}

	first := true
	for _, m := range meshes {
		r := DrawRange{
			BaseVertex: uint32(len(b.Vertices)),
			StartIndex: uint32(len(b.Indices)),
			IndexCount: uint32(len(m.faces) * 3),
		}

		normals := m.normals
		if len(normals) == 0 && opts.GenerateNormals {
			normals = GenerateNormals(m.positions, m.faces)
		}

		for i, p := range m.positions {
			v := Vertex{Position: p.Array()}
			if len(normals) > 0 {
				v.Normal = normals[i].Array()
			}
			if len(m.texCoords) > 0 {
				tc := m.texCoords[i]
				if opts.FlipV {
					tc.Y = 1 - tc.Y
				}
				v.TexCoord = tc.Array()
			}
			b.Vertices = append(b.Vertices, v)

			if first {
				b.Bounds = Bounds{Min: p, Max: p}
				first = false
			} else {
				b.Bounds.extend(p)
			}
		}

		for _, f := range m.faces {
			b.Indices = append(b.Indices,
				r.BaseVertex+f[0],
				r.BaseVertex+f[1],
				r.BaseVertex+f[2])
		}

		b.Ranges = append(b.Ranges, r)
	}

	return b
}

// bufferMagic starts every buffer dump.
var bufferMagic = [4]byte{'M', 'C', 'B', '1'}

type bufferHeader struct {
	Magic       [4]byte
	VertexCount uint32
	IndexCount  uint32
	RangeCount  uint32
	Bounds      [6]float32
}

// WriteTo writes a little-endian dump: header, draw ranges, vertices, indices.
func (b *Buffers) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	h := bufferHeader{
		Magic:       bufferMagic,
		VertexCount: uint32(len(b.Vertices)),
		IndexCount:  uint32(len(b.Indices)),
		RangeCount:  uint32(len(b.Ranges)),
		Bounds: [6]float32{
			b.Bounds.Min.X, b.Bounds.Min.Y, b.Bounds.Min.Z,
			b.Bounds.Max.X, b.Bounds.Max.Y, b.Bounds.Max.Z,
		},
	}
	for _, v := range []any{h, b.Ranges, b.Vertices, b.Indices} {
		if err := binary.Write(cw, binary.LittleEndian, v); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// Size returns the number of bytes WriteTo produces.
func (b *Buffers) Size() int64 {
	const headerSize = 4 + 3*4 + 6*4
	return headerSize +
		int64(len(b.Ranges))*12 +
		int64(len(b.Vertices))*VertexStride +
		int64(len(b.Indices))*4
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
