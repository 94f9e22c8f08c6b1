package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/tijon1/rbfx/probemesh"
)

// yamlPoints is the schema accepted by --format=yaml, read the same way
// InputParameters reads YAML run configs.
type yamlPoints struct {
	Points [][3]float32 `json:"points"`
}

// loadPoints reads a point cloud from path, either as whitespace/comma
// separated "x y z" rows (the default) or as YAML (--format=yaml).
func loadPoints(path, format string) ([]probemesh.Vector3, error) {
	switch format {
	case "", "csv":
		return loadCSVPoints(path)
	case "yaml":
		return loadYAMLPoints(path)
	default:
		return nil, fmt.Errorf("unsupported point file format: %s", format)
	}
}

func loadCSVPoints(path string) ([]probemesh.Vector3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var points []probemesh.Vector3
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(fields) != 3 {
			return nil, fmt.Errorf("expected 3 coordinates, got %d in line %q", len(fields), line)
		}
		var coords [3]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing coordinate %q: %w", field, err)
			}
			coords[i] = v
		}
		points = append(points, probemesh.Vector3{
			X: float32(coords[0]), Y: float32(coords[1]), Z: float32(coords[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func loadYAMLPoints(path string) ([]probemesh.Vector3, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var parsed yamlPoints
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing yaml point file: %w", err)
	}
	points := make([]probemesh.Vector3, len(parsed.Points))
	for i, p := range parsed.Points {
		points[i] = probemesh.Vector3{X: p[0], Y: p[1], Z: p[2]}
	}
	return points, nil
}
