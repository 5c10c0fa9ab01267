package loaders

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const testScene = `
; full-line comments are allowed
[scene]
I_a = 0.2
bg_color = #000000
max_depth = 3

[sphere1]
center = (0, 0, 5)
radius = 1
color = #FF0000
k_d = 0.7
k_s = 0.3
k_n = 25
reflection = 0.25

[Plane_floor]
point = [0, -1, 0]
normal = 0, 1, 0
color = #FFFFFF
k_d = 0.8
k_s = 0
checkerboard = 1

[disc1]
center = (0, 2, 5)
normal = (0, 0, -1)
r = 0.5
color = #00FF00
k_d = 0.5
k_s = 0.5
transparency = 0.5

[cylinder1]
center = (3, 0, 8)
axis = (0, 1, 0)
radius = 0.5
color = #0000FF
k_d = 0.5
k_s = 0.1

[triangle1]
v0 = (0, 0, 6)
v1 = (1, 0, 6)
v2 = (0, 1, 6)
color = #808080
k_d = 0.5
k_s = 0.5

# lights
[light1]
position = (0, 5, 0)
I_p = 0.8
C2 = 0.1
color = #FFFF00

[light2]
position = (5, 5, 0)
intensity = 0.4

[camera]
position = (0, 0, 0)
look_at = (0, 0, 5)

[projection]
distance = 1
width = 2
height = 1.5
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.ini", testScene)

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sc := loaded.Scene

	if !loaded.HasMaxDepth || loaded.MaxDepth != 3 {
		t.Errorf("Expected max depth 3, got %d (set=%v)", loaded.MaxDepth, loaded.HasMaxDepth)
	}
	if sc.Ambient != 0.2 {
		t.Errorf("Expected ambient 0.2, got %v", sc.Ambient)
	}
	if sc.Background != core.Black {
		t.Errorf("Expected black background, got %v", sc.Background)
	}
	if sc.AmbientColor != core.White {
		t.Errorf("Expected white ambient color, got %v", sc.AmbientColor)
	}

	prims := sc.Primitives()
	expectedKinds := []geometry.Kind{
		geometry.KindSphere, geometry.KindPlane, geometry.KindDisc, geometry.KindCylinder, geometry.KindTriangle,
	}
	if len(prims) != len(expectedKinds) {
		t.Fatalf("Expected %d primitives, got %d", len(expectedKinds), len(prims))
	}
	for i, kind := range expectedKinds {
		if prims[i].Kind() != kind {
			t.Errorf("Primitive %d: expected %s, got %s", i, kind, prims[i].Kind())
		}
	}

	sphere := prims[0].(*geometry.Sphere)
	if sphere.Center != core.NewVec3(0, 0, 5) || sphere.Radius != 1 {
		t.Errorf("Unexpected sphere %+v", sphere)
	}
	mat := sphere.Material
	if mat.Color != core.NewVec3(1, 0, 0) || mat.Diffuse != 0.7 || mat.Specular != 0.3 ||
		mat.Shininess != 25 || mat.Ambient != 1 || mat.Reflectivity != 0.25 || mat.Transparency != 0 {
		t.Errorf("Unexpected sphere material %+v", mat)
	}

	floor := prims[1].(*geometry.Plane).Material
	if floor.CheckerSize != 1 || floor.CheckerColor != core.Black {
		t.Errorf("Expected checkerboard with complementary color, got size %v color %v", floor.CheckerSize, floor.CheckerColor)
	}
	if floor.Shininess != 10 {
		t.Errorf("Expected default shininess 10, got %v", floor.Shininess)
	}

	if disc := prims[2].(*geometry.Disc); disc.Radius != 0.5 || disc.Material.Transparency != 0.5 {
		t.Errorf("Unexpected disc %+v", disc)
	}
	if cyl := prims[3].(*geometry.Cylinder); cyl.Point != core.NewVec3(3, 0, 8) {
		t.Errorf("Expected cylinder point from center alias, got %v", cyl.Point)
	}

	ls := sc.Lights()
	if len(ls) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(ls))
	}
	if ls[0].Intensity != 0.8 || ls[0].Linear != 0.1 || ls[0].Constant != 1 || ls[0].Quadratic != 0 {
		t.Errorf("Unexpected light %+v", ls[0])
	}
	if ls[0].Color != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected yellow light, got %v", ls[0].Color)
	}
	if ls[1].Intensity != 0.4 || ls[1].Color != core.White {
		t.Errorf("Unexpected light %+v", ls[1])
	}
}

func TestLoadScene_Defaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.ini", "[scene]\ni_a = 0.1\n")

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded.HasMaxDepth {
		t.Error("Expected max depth to be unset")
	}
	if loaded.Scene.Background != scene.DefaultBackground {
		t.Errorf("Expected default background, got %v", loaded.Scene.Background)
	}
	if loaded.Scene.GetPrimitiveCount() != 0 || len(loaded.Scene.Lights()) != 0 {
		t.Error("Expected an empty scene")
	}
}

func TestLoadScene_DegenerateIsNotAnError(t *testing.T) {
	content := `
[scene]
i_a = 0.1

[sphere_flat]
center = (0, 0, 0)
radius = 0
color = #FFFFFF
k_d = 1
k_s = 0

[triangle_line]
v0 = (0, 0, 0)
v1 = (1, 1, 1)
v2 = (2, 2, 2)
color = #FFFFFF
k_d = 1
k_s = 0
`
	path := writeFile(t, t.TempDir(), "scene.ini", content)

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded.Scene.DegenerateCount() != 2 {
		t.Errorf("Expected 2 degenerate primitives, got %d", loaded.Scene.DegenerateCount())
	}
}

func TestLoadScene_ValidationErrors(t *testing.T) {
	const sphere = "center = (0, 0, 5)\nradius = 1\ncolor = #FF0000\nk_d = 0.5\nk_s = 0.5\n"

	tests := []struct {
		name    string
		content string
		section string
		key     string
	}{
		{"missing scene section", "[sphere1]\n" + sphere, "scene", "i_a"},
		{"missing ambient", "[scene]\nbg_color = #000000\n", "scene", "i_a"},
		{"negative ambient", "[scene]\ni_a = -1\n", "scene", "i_a"},
		{"bad background", "[scene]\ni_a = 1\nbg_color = #12345\n", "scene", "bg_color"},
		{"bad max depth", "[scene]\ni_a = 1\nmax_depth = deep\n", "scene", "max_depth"},
		{"unknown prefix", "[scene]\ni_a = 1\n[cube1]\n" + sphere, "cube1", ""},
		{"duplicate section", "[scene]\ni_a = 1\n[sphere1]\n" + sphere + "[sphere1]\n" + sphere, "sphere1", ""},
		{"duplicate differing case", "[scene]\ni_a = 1\n[Sphere1]\n" + sphere + "[sphere1]\n" + sphere, "sphere1", ""},
		{"coefficient out of range", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0,0,5)\nradius = 1\ncolor = #FF0000\nk_d = 1.5\nk_s = 0\n", "sphere1", "k_d"},
		{"negative reflection", "[scene]\ni_a = 1\n[sphere1]\n" + sphere + "reflection = -0.1\n", "sphere1", "reflection"},
		{"negative shininess", "[scene]\ni_a = 1\n[sphere1]\n" + sphere + "k_n = -2\n", "sphere1", "k_n"},
		{"missing color", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0,0,5)\nradius = 1\nk_d = 1\nk_s = 0\n", "sphere1", "color"},
		{"bad color", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0,0,5)\nradius = 1\ncolor = red\nk_d = 1\nk_s = 0\n", "sphere1", "color"},
		{"missing k_s", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0,0,5)\nradius = 1\ncolor = #FF0000\nk_d = 1\n", "sphere1", "k_s"},
		{"missing radius", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0,0,5)\ncolor = #FF0000\nk_d = 1\nk_s = 0\n", "sphere1", "radius"},
		{"short vector", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0, 0)\nradius = 1\ncolor = #FF0000\nk_d = 1\nk_s = 0\n", "sphere1", "center"},
		{"unterminated vector", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0, 0, 1\nradius = 1\ncolor = #FF0000\nk_d = 1\nk_s = 0\n", "sphere1", "center"},
		{"bad number", "[scene]\ni_a = 1\n[sphere1]\ncenter = (0, 0, 1)\nradius = one\ncolor = #FF0000\nk_d = 1\nk_s = 0\n", "sphere1", "radius"},
		{"light without intensity", "[scene]\ni_a = 1\n[light1]\nposition = (0, 5, 0)\n", "light1", "intensity"},
		{"negative light intensity", "[scene]\ni_a = 1\n[light1]\nposition = (0, 5, 0)\ni_p = -1\n", "light1", "i_p"},
		{"mesh without file", "[scene]\ni_a = 1\n[mesh1]\ncolor = #FF0000\nk_d = 1\nk_s = 0\n", "mesh1", "file"},
		{"mesh missing on disk", "[scene]\ni_a = 1\n[mesh1]\nfile = nope.ply\ncolor = #FF0000\nk_d = 1\nk_s = 0\n", "mesh1", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "scene.ini", tt.content)

			_, err := LoadScene(path)
			var verr *ConfigValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ConfigValidationError, got %T: %v", err, err)
			}
			if verr.Section != tt.section || verr.Key != tt.key {
				t.Errorf("Expected [%s] %q, got [%s] %q (%v)", tt.section, tt.key, verr.Section, verr.Key, err)
			}
			if verr.Path != path {
				t.Errorf("Expected path %s, got %s", path, verr.Path)
			}
		})
	}
}

func TestLoadScene_OverCommittedMaterialAccepted(t *testing.T) {
	content := "[scene]\ni_a = 1\n[sphere1]\ncenter = (0,0,5)\nradius = 1\ncolor = #FF0000\nk_d = 1\nk_s = 1\nreflection = 0.8\ntransparency = 0.8\n"
	path := writeFile(t, t.TempDir(), "scene.ini", content)

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	mat := loaded.Scene.Primitives()[0].GetMaterial()
	if math.Abs(mat.Residual()-(-0.6)) > 1e-12 {
		t.Errorf("Expected residual -0.6, got %v", mat.Residual())
	}
}

func TestLoadScene_SyntaxError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unclosed section", "[scene\ni_a = 1\n"},
		{"line without delimiter", "[scene]\ni_a 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "scene.ini", tt.content)
			_, err := LoadScene(path)

			var serr *ConfigSyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Expected ConfigSyntaxError, got %T: %v", err, err)
			}
			if serr.Path != path {
				t.Errorf("Expected path %s, got %s", path, serr.Path)
			}
		})
	}
}

func TestLoadScene_MissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "missing.ini"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadScene_Mesh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.ply", `ply
format ascii 1.0
element vertex 5
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
0 0 1
4 0 1 2 3
3 0 1 4
`)
	content := "[scene]\ni_a = 1\n[mesh1]\nfile = quad.ply\noffset = (0, 0, 5)\nscale = 2\ncolor = #FF0000\nk_d = 1\nk_s = 0\n"
	path := writeFile(t, dir, "scene.ini", content)

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	prims := loaded.Scene.Primitives()
	if len(prims) != 3 {
		t.Fatalf("Expected 3 triangles, got %d", len(prims))
	}
	first := prims[0].(*geometry.Triangle)
	if first.V0 != core.NewVec3(0, 0, 5) || first.V1 != core.NewVec3(2, 0, 5) || first.V2 != core.NewVec3(2, 2, 5) {
		t.Errorf("Unexpected transformed triangle %v %v %v", first.V0, first.V1, first.V2)
	}
	if first.Material != prims[2].GetMaterial() {
		t.Error("Expected mesh triangles to share one material")
	}
}

func TestLoadObserver_Projection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.ini", testScene)

	obs, err := LoadObserver(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !obs.Observer.Forward.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected forward (0,0,1), got %v", obs.Observer.Forward)
	}
	if !obs.Observer.Up.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected up (0,1,0), got %v", obs.Observer.Up)
	}
	expected := scene.ProjectionPlane{Distance: 1, Width: 2, Height: 1.5}
	if obs.Plane != expected {
		t.Errorf("Expected plane %+v, got %+v", expected, obs.Plane)
	}
}

func TestLoadObserver_Legacy(t *testing.T) {
	content := `
[camera]
position = (1, 0, -5)

[plane]
z = 0
x_min = -2
x_max = 2
y_min = -1
y_max = 3
`
	path := writeFile(t, t.TempDir(), "observer.ini", content)

	obs, err := LoadObserver(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !obs.Observer.Forward.Equals(core.NewVec3(0, 0, 1)) || !obs.Observer.Right.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Unexpected legacy basis %+v", obs.Observer)
	}
	expected := scene.ProjectionPlane{Distance: 5, Width: 4, Height: 4, OffsetRight: -1, OffsetUp: 1}
	if obs.Plane != expected {
		t.Errorf("Expected plane %+v, got %+v", expected, obs.Plane)
	}

	// The plane center lies on the rectangle center
	if center := obs.Plane.Center(obs.Observer); !center.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected plane center (0,1,0), got %v", center)
	}
}

func TestLoadObserver_LegacyMatchesProjection(t *testing.T) {
	dir := t.TempDir()
	legacy := writeFile(t, dir, "legacy.ini", "[camera]\nposition = (0, 0, -1)\n[plane]\nz = 0\nx_min = -1\nx_max = 1\ny_min = -1\ny_max = 1\n")
	projection := writeFile(t, dir, "projection.ini", "[camera]\nposition = (0, 0, -1)\nlook_at = (0, 0, 0)\n[projection]\ndistance = 1\nwidth = 2\nheight = 2\n")

	legacyObs, err := LoadObserver(legacy)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	projectionObs, err := LoadObserver(projection)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Looking down +z with +y up, +x is on the right of the image in both forms
	for name, obs := range map[string]*ObserverFile{"legacy": legacyObs, "projection": projectionObs} {
		if !obs.Observer.Right.Equals(core.NewVec3(1, 0, 0)) {
			t.Errorf("%s: expected right (1,0,0), got %v", name, obs.Observer.Right)
		}
		if !obs.Observer.Up.Equals(core.NewVec3(0, 1, 0)) {
			t.Errorf("%s: expected up (0,1,0), got %v", name, obs.Observer.Up)
		}
	}
	if legacyObs.Plane != projectionObs.Plane {
		t.Errorf("Expected matching planes, got %+v and %+v", legacyObs.Plane, projectionObs.Plane)
	}
}

func TestLoadObserver_LegacyLookingDownNegativeZ(t *testing.T) {
	content := "[camera]\nposition = (0, 0, 5)\n[plane]\nz = 0\nx_min = 0\nx_max = 2\ny_min = -1\ny_max = 1\n"
	path := writeFile(t, t.TempDir(), "observer.ini", content)

	obs, err := LoadObserver(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !obs.Observer.Forward.Equals(core.NewVec3(0, 0, -1)) || !obs.Observer.Right.Equals(core.NewVec3(-1, 0, 0)) {
		t.Errorf("Unexpected legacy basis %+v", obs.Observer)
	}
	if center := obs.Plane.Center(obs.Observer); !center.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected plane center (1,0,0), got %v", center)
	}
}

func TestLoadObserver_Errors(t *testing.T) {
	const projection = "[projection]\ndistance = 1\nwidth = 1\nheight = 1\n"

	tests := []struct {
		name    string
		content string
		section string
		key     string
	}{
		{"missing camera", projection, "camera", "position"},
		{"missing position", "[camera]\nup = (0,1,0)\n" + projection, "camera", "position"},
		{"missing projection", "[camera]\nposition = (0,0,0)\n", "projection", ""},
		{"both look_at and forward", "[camera]\nposition = (0,0,0)\nlook_at = (0,0,1)\nforward = (0,0,1)\n" + projection, "camera", "forward"},
		{"degenerate orientation", "[camera]\nposition = (0,0,0)\nforward = (0,1,0)\n" + projection, "camera", ""},
		{"zero width", "[camera]\nposition = (0,0,0)\n[projection]\ndistance = 1\nwidth = 0\nheight = 1\n", "projection", "width"},
		{"missing distance", "[camera]\nposition = (0,0,0)\n[projection]\nwidth = 1\nheight = 1\n", "projection", "distance"},
		{"legacy inverted bounds", "[camera]\nposition = (0,0,-1)\n[plane]\nx_min = 1\nx_max = -1\ny_min = -1\ny_max = 1\n", "plane", "x_max"},
		{"legacy plane through camera", "[camera]\nposition = (0,0,0)\n[plane]\nz = 0\nx_min = -1\nx_max = 1\ny_min = -1\ny_max = 1\n", "plane", "z"},
		{"duplicate camera", "[camera]\nposition = (0,0,0)\n[camera]\nposition = (0,0,1)\n" + projection, "camera", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "observer.ini", tt.content)

			_, err := LoadObserver(path)
			var verr *ConfigValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ConfigValidationError, got %T: %v", err, err)
			}
			if verr.Section != tt.section || verr.Key != tt.key {
				t.Errorf("Expected [%s] %q, got [%s] %q (%v)", tt.section, tt.key, verr.Section, verr.Key, err)
			}
		})
	}
}

func TestLoadObserver_DegenerateWrapsSentinel(t *testing.T) {
	content := "[camera]\nposition = (0,0,0)\nlook_at = (0,0,0)\n[projection]\ndistance = 1\nwidth = 1\nheight = 1\n"
	path := writeFile(t, t.TempDir(), "observer.ini", content)

	_, err := LoadObserver(path)
	if !errors.Is(err, scene.ErrDegenerateObserver) {
		t.Errorf("Expected ErrDegenerateObserver, got %v", err)
	}
}

func TestParseVec3(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Vec3
		wantErr  bool
	}{
		{"(1, 2, 3)", core.NewVec3(1, 2, 3), false},
		{"[1.5,-2,3e2]", core.NewVec3(1.5, -2, 300), false},
		{"  -1, 0 , .5 ", core.NewVec3(-1, 0, 0.5), false},
		{"(1, 2)", core.Vec3{}, true},
		{"(1, 2, 3", core.Vec3{}, true},
		{"[1, 2, 3)", core.Vec3{}, true},
		{"1, 2, 3, 4", core.Vec3{}, true},
		{"a, b, c", core.Vec3{}, true},
		{"(1, NaN, 3)", core.Vec3{}, true},
		{"", core.Vec3{}, true},
	}

	for _, tt := range tests {
		got, err := ParseVec3(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVec3(%q): expected error=%v, got %v", tt.input, tt.wantErr, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseVec3(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Vec3
		wantErr  bool
	}{
		{"#FFFFFF", core.White, false},
		{"#000000", core.Black, false},
		{"#ff0000", core.NewVec3(1, 0, 0), false},
		{"#3D1A28", scene.DefaultBackground, false},
		{"FFFFFF", core.Vec3{}, true},
		{"#FFF", core.Vec3{}, true},
		{"#GG0000", core.Vec3{}, true},
		{"#+10000", core.Vec3{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q): expected error=%v, got %v", tt.input, tt.wantErr, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseHexColor(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestBundledScenes(t *testing.T) {
	tests := []struct {
		scene      string
		observer   string
		primitives int
		lights     int
	}{
		{"basic.ini", "basic.ini", 7, 2},
		{"basic.ini", "observer_legacy.ini", 7, 2},
		{"mesh.ini", "mesh.ini", 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.scene+"+"+tt.observer, func(t *testing.T) {
			loaded, err := LoadScene(filepath.Join("..", "..", "scenes", tt.scene))
			if err != nil {
				t.Fatalf("Failed to load scene: %v", err)
			}
			if got := loaded.Scene.GetPrimitiveCount(); got != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, got)
			}
			if got := len(loaded.Scene.Lights()); got != tt.lights {
				t.Errorf("Expected %d lights, got %d", tt.lights, got)
			}
			if loaded.Scene.DegenerateCount() != 0 {
				t.Errorf("Expected no degenerate primitives, got %d", loaded.Scene.DegenerateCount())
			}

			obs, err := LoadObserver(filepath.Join("..", "..", "scenes", tt.observer))
			if err != nil {
				t.Fatalf("Failed to load observer: %v", err)
			}
			if err := obs.Plane.Validate(); err != nil {
				t.Errorf("Invalid projection plane: %v", err)
			}
		})
	}
}
