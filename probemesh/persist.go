package probemesh

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Save writes m to w in the persisted layout from spec 6: vertices, then
// tetrahedra, then hull normals, then numInnerTetrahedrons, then ignored
// vertices, each length-prefixed where it's a sequence. The mesh never
// depends on a concrete archive library itself (spec 1, "out of scope");
// this is the plain binary codec an external archive collaborator would
// read and write against.
func (m *Mesh) Save(w io.Writer) error {
	if err := writeVector3s(w, m.Vertices); err != nil {
		return fmt.Errorf("probemesh: writing vertices: %w", err)
	}
	if err := writeTetrahedrons(w, m.Tetrahedrons); err != nil {
		return fmt.Errorf("probemesh: writing tetrahedra: %w", err)
	}
	if err := writeVector3s(w, m.HullNormals); err != nil {
		return fmt.Errorf("probemesh: writing hull normals: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.NumInnerTetrahedrons); err != nil {
		return fmt.Errorf("probemesh: writing inner tetrahedron count: %w", err)
	}
	if err := writeUint32s(w, m.IgnoredVertices); err != nil {
		return fmt.Errorf("probemesh: writing ignored vertices: %w", err)
	}
	return nil
}

// Load replaces m's contents by decoding the layout written by Save. It
// returns ErrTruncatedArchive if r ends before a length-prefixed section
// is fully read.
func (m *Mesh) Load(r io.Reader) error {
	vertices, err := readVector3s(r)
	if err != nil {
		return fmt.Errorf("probemesh: reading vertices: %w", err)
	}
	tetrahedrons, err := readTetrahedrons(r)
	if err != nil {
		return fmt.Errorf("probemesh: reading tetrahedra: %w", err)
	}
	hullNormals, err := readVector3s(r)
	if err != nil {
		return fmt.Errorf("probemesh: reading hull normals: %w", err)
	}
	var numInner uint32
	if err := binary.Read(r, binary.LittleEndian, &numInner); err != nil {
		return fmt.Errorf("%w: inner tetrahedron count: %v", ErrTruncatedArchive, err)
	}
	ignored, err := readUint32s(r)
	if err != nil {
		return fmt.Errorf("probemesh: reading ignored vertices: %w", err)
	}

	m.Vertices = vertices
	m.Tetrahedrons = tetrahedrons
	m.HullNormals = hullNormals
	m.NumInnerTetrahedrons = numInner
	m.IgnoredVertices = ignored
	return nil
}

func writeVector3s(w io.Writer, vs []Vector3) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v.X); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, v.Y); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, v.Z); err != nil {
			return err
		}
	}
	return nil
}

func readVector3s(r io.Reader) ([]Vector3, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: length prefix: %v", ErrTruncatedArchive, err)
	}
	out := make([]Vector3, n)
	for i := range out {
		var v Vector3
		if err := binary.Read(r, binary.LittleEndian, &v.X); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrTruncatedArchive, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &v.Y); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrTruncatedArchive, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &v.Z); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrTruncatedArchive, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func writeUint32s(w io.Writer, vs []uint32) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readUint32s(r io.Reader) ([]uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: length prefix: %v", ErrTruncatedArchive, err)
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]uint32, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrTruncatedArchive, i, err)
		}
	}
	return out, nil
}

func writeTetrahedrons(w io.Writer, ts []Tetrahedron) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ts))); err != nil {
		return err
	}
	for _, t := range ts {
		if err := binary.Write(w, binary.LittleEndian, t.Indices); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, t.Neighbors); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, t.Matrix.M); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, t.Matrix.Translation); err != nil {
			return err
		}
	}
	return nil
}

func readTetrahedrons(r io.Reader) ([]Tetrahedron, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: length prefix: %v", ErrTruncatedArchive, err)
	}
	out := make([]Tetrahedron, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i].Indices); err != nil {
			return nil, fmt.Errorf("%w: element %d indices: %v", ErrTruncatedArchive, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &out[i].Neighbors); err != nil {
			return nil, fmt.Errorf("%w: element %d neighbors: %v", ErrTruncatedArchive, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &out[i].Matrix.M); err != nil {
			return nil, fmt.Errorf("%w: element %d matrix: %v", ErrTruncatedArchive, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &out[i].Matrix.Translation); err != nil {
			return nil, fmt.Errorf("%w: element %d matrix translation: %v", ErrTruncatedArchive, i, err)
		}
	}
	return out, nil
}
