package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Reader and writer for gmsh MSH 2.2 ASCII surface meshes. Only 3-node
// triangles (element type 2) are imported; points, lines and volume elements
// emitted by gmsh for the underlying CAD entities are skipped. The first
// element tag (the physical group) becomes the domain tag.

const gmshTriangle = 2

// ReadMshFile reads a gmsh MSH 2.2 ASCII file from disk.
func ReadMshFile(path string) (*TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadMsh(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// ReadMsh parses a gmsh MSH 2.2 ASCII stream.
func ReadMsh(r io.Reader) (*TriangleMesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var vertices []r3.Vec
	var elements [][3]int
	var tags []int
	nodeIndex := make(map[int]int) // gmsh node id -> vertex index

	nextLine := func() (string, error) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, nil
			}
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	for {
		line, err := nextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch line {
		case "$MeshFormat":
			header, err := nextLine()
			if err != nil {
				return nil, fmt.Errorf("truncated $MeshFormat section")
			}
			fields := strings.Fields(header)
			if len(fields) < 3 || !strings.HasPrefix(fields[0], "2.") {
				return nil, fmt.Errorf("unsupported mesh format %q, need MSH 2.x ASCII", header)
			}
			if fields[1] != "0" {
				return nil, fmt.Errorf("binary MSH files are not supported")
			}
			if err := skipToEnd(nextLine, "$EndMeshFormat"); err != nil {
				return nil, err
			}
		case "$Nodes":
			count, err := sectionCount(nextLine, "$Nodes")
			if err != nil {
				return nil, err
			}
			for i := 0; i < count; i++ {
				line, err := nextLine()
				if err != nil {
					return nil, fmt.Errorf("truncated $Nodes section")
				}
				fields := strings.Fields(line)
				if len(fields) != 4 {
					return nil, fmt.Errorf("malformed node line %q", line)
				}
				id, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("malformed node id %q", fields[0])
				}
				var xyz [3]float64
				for j := 0; j < 3; j++ {
					xyz[j], err = strconv.ParseFloat(fields[j+1], 64)
					if err != nil {
						return nil, fmt.Errorf("malformed node coordinate %q", fields[j+1])
					}
				}
				nodeIndex[id] = len(vertices)
				vertices = append(vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
			}
			if err := skipToEnd(nextLine, "$EndNodes"); err != nil {
				return nil, err
			}
		case "$Elements":
			count, err := sectionCount(nextLine, "$Elements")
			if err != nil {
				return nil, err
			}
			for i := 0; i < count; i++ {
				line, err := nextLine()
				if err != nil {
					return nil, fmt.Errorf("truncated $Elements section")
				}
				fields := strings.Fields(line)
				if len(fields) < 3 {
					return nil, fmt.Errorf("malformed element line %q", line)
				}
				elType, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("malformed element type %q", fields[1])
				}
				if elType != gmshTriangle {
					continue
				}
				numTags, err := strconv.Atoi(fields[2])
				if err != nil || len(fields) < 3+numTags+3 {
					return nil, fmt.Errorf("malformed triangle element line %q", line)
				}
				tag := 1
				if numTags > 0 {
					tag, err = strconv.Atoi(fields[3])
					if err != nil {
						return nil, fmt.Errorf("malformed physical tag %q", fields[3])
					}
				}
				var el [3]int
				for j := 0; j < 3; j++ {
					id, err := strconv.Atoi(fields[3+numTags+j])
					if err != nil {
						return nil, fmt.Errorf("malformed element node id %q", fields[3+numTags+j])
					}
					idx, ok := nodeIndex[id]
					if !ok {
						return nil, fmt.Errorf("element references unknown node %d", id)
					}
					el[j] = idx
				}
				elements = append(elements, el)
				tags = append(tags, tag)
			}
			if err := skipToEnd(nextLine, "$EndElements"); err != nil {
				return nil, err
			}
		default:
			// Unknown section ($PhysicalNames, $Periodic, ...): skip it.
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := skipToEnd(nextLine, "$End"+line[1:]); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(elements) == 0 {
		return nil, fmt.Errorf("mesh contains no triangle elements")
	}
	return NewTriangleMesh(vertices, elements, tags)
}

func sectionCount(nextLine func() (string, error), section string) (int, error) {
	line, err := nextLine()
	if err != nil {
		return 0, fmt.Errorf("truncated %s section", section)
	}
	count, err := strconv.Atoi(line)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("malformed %s count %q", section, line)
	}
	return count, nil
}

func skipToEnd(nextLine func() (string, error), end string) error {
	for {
		line, err := nextLine()
		if err != nil {
			return fmt.Errorf("missing %s", end)
		}
		if line == end {
			return nil
		}
	}
}

// WriteMshFile writes a mesh to disk in MSH 2.2 ASCII format.
func WriteMshFile(g Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteMsh(g, f)
}

// WriteMsh writes a mesh in MSH 2.2 ASCII format. Each triangle is written
// with its domain tag as both the physical and geometrical tag.
func WriteMsh(g Grid, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")
	fmt.Fprintf(bw, "$Nodes\n%d\n", g.NumVertices())
	for i := 0; i < g.NumVertices(); i++ {
		v := g.Vertex(i)
		fmt.Fprintf(bw, "%d %.16g %.16g %.16g\n", i+1, v.X, v.Y, v.Z)
	}
	fmt.Fprintf(bw, "$EndNodes\n$Elements\n%d\n", g.NumElements())
	for k := 0; k < g.NumElements(); k++ {
		el := g.Element(k)
		tag := g.DomainTag(k)
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d %d\n", k+1, gmshTriangle, tag, tag, el[0]+1, el[1]+1, el[2]+1)
	}
	fmt.Fprintf(bw, "$EndElements\n")
	return bw.Flush()
}
