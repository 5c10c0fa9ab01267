package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian" or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle), polygons fan-triangulated
}

// TriangleCount returns the number of triangles in the mesh
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// Triangle returns the vertices of triangle i
func (d *PLYData) Triangle(i int) (core.Vec3, core.Vec3, core.Vec3) {
	return d.Vertices[d.Faces[3*i]], d.Vertices[d.Faces[3*i+1]], d.Vertices[d.Faces[3*i+2]]
}

// plyReader reads scalar values from the element data of a PLY file
type plyReader interface {
	read(dataType string) (float64, error)
}

// LoadPLY loads an ascii or binary little-endian PLY file
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse PLY header: %w", filename, err)
	}

	var body plyReader
	switch header.Format {
	case "binary_little_endian":
		body = &binaryPLYReader{reader: reader, order: binary.LittleEndian}
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		body = &asciiPLYReader{scanner: scanner}
	case "binary_big_endian":
		return nil, fmt.Errorf("%s: binary big-endian PLY format not supported", filename)
	default:
		return nil, fmt.Errorf("%s: unsupported PLY format: %q", filename, header.Format)
	}

	data, err := readPLYBody(body, header)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read PLY data: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))

	return data, nil
}

// parsePLYHeader consumes the header, leaving reader at the first element byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string
	first := true

	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("missing end_header")
			}
			return nil, err
		}
		line := strings.TrimSpace(raw)

		if first {
			if line != "ply" {
				return nil, errors.New("missing ply magic number")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		default:
			return nil, fmt.Errorf("unexpected header line: %q", line)
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{
			IsList:   true,
			ListType: parts[1],
			DataType: parts[2],
			Name:     parts[3],
		}, nil
	}

	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readPLYBody(body plyReader, header *PLYHeader) (*PLYData, error) {
	axes := map[string]int{"x": 0, "y": 1, "z": 2}
	found := 0
	for _, prop := range header.VertexProps {
		if _, ok := axes[prop.Name]; ok && !prop.IsList {
			found++
		}
	}
	if header.VertexCount > 0 && found != 3 {
		return nil, errors.New("vertex element must have x, y and z properties")
	}

	data := &PLYData{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3),
	}

	for i := 0; i < header.VertexCount; i++ {
		var xyz [3]float64
		for _, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := readPLYList(body, prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := body.read(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			if axis, ok := axes[prop.Name]; ok {
				xyz[axis] = v
			}
		}
		data.Vertices = append(data.Vertices, core.NewVec3(xyz[0], xyz[1], xyz[2]))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := body.read(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			values, err := readPLYList(body, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(values) < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, len(values))
			}

			indices := make([]int, len(values))
			for k, v := range values {
				idx := int(v)
				if idx < 0 || idx >= len(data.Vertices) {
					return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
				}
				indices[k] = idx
			}

			// Fan triangulation
			for k := 1; k+1 < len(indices); k++ {
				data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}

	return data, nil
}

func readPLYList(body plyReader, prop PLYProperty) ([]float64, error) {
	n, err := body.read(prop.ListType)
	if err != nil {
		return nil, err
	}
	if n < 0 || n != math.Trunc(n) {
		return nil, fmt.Errorf("invalid list length %v", n)
	}

	values := make([]float64, int(n))
	for k := range values {
		if values[k], err = body.read(prop.DataType); err != nil {
			return nil, err
		}
	}
	return values, nil
}

type binaryPLYReader struct {
	reader io.Reader
	order  binary.ByteOrder
}

func (r *binaryPLYReader) read(dataType string) (float64, error) {
	switch dataType {
	case "float", "float32":
		var v float32
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	case "double", "float64":
		var v float64
		err := binary.Read(r.reader, r.order, &v)
		return v, err
	case "int", "int32":
		var v int32
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	case "char", "int8":
		var v int8
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(r.reader, r.order, &v)
		return float64(v), err
	default:
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
}

type asciiPLYReader struct {
	scanner *bufio.Scanner
}

func (r *asciiPLYReader) read(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	token := r.scanner.Text()
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token)
	}
	return v, nil
}
