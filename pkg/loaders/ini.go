package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("loaders")

// Reserved section names; every other section is typed by its name prefix.
const (
	sectionScene      = "scene"
	sectionCamera     = "camera"
	sectionProjection = "projection"
	sectionPlane      = "plane" // legacy observer projection plane
)

// Defaults applied to optional keys
var (
	DefaultAmbientColor = core.White
	DefaultUp           = core.NewVec3(0, 1, 0)
	DefaultForward      = core.NewVec3(0, 0, 1)
)

// SceneFile is a scene loaded from an INI file
type SceneFile struct {
	Scene *scene.Scene

	// MaxDepth is the [scene] max_depth value; HasMaxDepth is false when the
	// key is absent
	MaxDepth    int
	HasMaxDepth bool
}

// ObserverFile is an observer pose and projection plane loaded from an INI file
type ObserverFile struct {
	Observer *scene.Observer
	Plane    scene.ProjectionPlane
}

type primitiveBuilder func(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error)

var primitiveBuilders = []struct {
	prefix string
	build  primitiveBuilder
}{
	{"sphere", buildSphere},
	{"plane", buildPlane},
	{"disc", buildDisc},
	{"cylinder", buildCylinder},
	{"triangle", buildTriangle},
	{"mesh", buildMesh},
}

const lightPrefix = "light"

// loadINI reads and parses path. A missing or unreadable file is returned as the
// wrapped OS error; malformed INI as *ConfigSyntaxError.
func loadINI(path string) (*ini.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:            true,
		AllowNonUniqueSections: true,
		IgnoreInlineComment:    true,
	}, data)
	if err != nil {
		return nil, &ConfigSyntaxError{Path: path, Err: err}
	}
	return cfg, nil
}

// LoadScene loads the primitives, lights and ambient settings of an INI scene
// file. Sections are validated in file order and the first problem is returned.
func LoadScene(path string) (*SceneFile, error) {
	cfg, err := loadINI(path)
	if err != nil {
		return nil, err
	}

	result := &SceneFile{}
	sceneCfg := scene.Config{
		Background:   scene.DefaultBackground,
		AmbientColor: DefaultAmbientColor,
	}
	seen := make(map[string]bool)
	foundScene := false

	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if strings.EqualFold(name, ini.DefaultSection) {
			if len(sec.Keys()) > 0 {
				logger.Warningf("%s: ignoring %d keys outside of any section", path, len(sec.Keys()))
			}
			continue
		}

		r := &sectionReader{path: path, sec: sec, dir: filepath.Dir(path)}
		if seen[name] {
			return nil, r.invalid("", "duplicate section name")
		}
		seen[name] = true

		switch {
		case name == sectionScene:
			foundScene = true
			if err := readSceneSection(r, &sceneCfg, result); err != nil {
				return nil, err
			}
		case name == sectionCamera || name == sectionProjection:
			// Observer sections, read by LoadObserver
		case name == sectionPlane && r.has("x_min"):
			// Legacy observer projection plane
		case strings.HasPrefix(name, lightPrefix):
			light, err := buildLight(r)
			if err != nil {
				return nil, err
			}
			sceneCfg.Lights = append(sceneCfg.Lights, light)
		default:
			prims, err := buildPrimitives(r)
			if err != nil {
				return nil, err
			}
			sceneCfg.Primitives = append(sceneCfg.Primitives, prims...)
		}
	}

	if !foundScene {
		return nil, &ConfigValidationError{Path: path, Section: sectionScene, Key: "i_a", Reason: "missing required key"}
	}

	result.Scene = scene.New(sceneCfg)
	logger.Infof("loaded scene %s: %d primitives, %d lights",
		path, result.Scene.GetPrimitiveCount(), len(result.Scene.Lights()))

	return result, nil
}

func readSceneSection(r *sectionReader, cfg *scene.Config, result *SceneFile) error {
	var err error
	if cfg.Ambient, err = r.requiredFloat("i_a"); err != nil {
		return err
	}
	if cfg.Ambient < 0 {
		return r.invalid("i_a", "must be >= 0")
	}
	if cfg.Background, err = r.optionalColor("bg_color", scene.DefaultBackground); err != nil {
		return err
	}
	if cfg.AmbientColor, err = r.optionalColor("ambient_color", DefaultAmbientColor); err != nil {
		return err
	}

	if r.has("max_depth") {
		depth, err := r.requiredInt("max_depth")
		if err != nil {
			return err
		}
		if depth < 0 {
			return r.invalid("max_depth", "must be >= 0")
		}
		result.MaxDepth, result.HasMaxDepth = depth, true
	}
	return nil
}

func buildPrimitives(r *sectionReader) ([]geometry.Primitive, error) {
	name := r.sec.Name()
	for _, b := range primitiveBuilders {
		if !strings.HasPrefix(name, b.prefix) {
			continue
		}

		mat, err := readMaterial(r)
		if err != nil {
			return nil, err
		}
		prims, err := b.build(r, mat)
		if err != nil {
			return nil, err
		}

		// Meshes report their degenerate triangles in aggregate
		if b.prefix != "mesh" {
			for _, p := range prims {
				if p.Degenerate() {
					logger.Warningf("%s: [%s] degenerate %s will never be hit", r.path, name, p.Kind())
				}
			}
		}
		return prims, nil
	}

	return nil, r.invalid("", "unknown section type")
}

func readMaterial(r *sectionReader) (*material.Material, error) {
	var p material.Params
	var err error

	if p.Color, err = r.requiredColor("color"); err != nil {
		return nil, err
	}
	if p.Diffuse, err = r.unitFloat("k_d", nil); err != nil {
		return nil, err
	}
	if p.Specular, err = r.unitFloat("k_s", nil); err != nil {
		return nil, err
	}
	one, zero := 1.0, 0.0
	if p.Ambient, err = r.unitFloat("k_a", &one); err != nil {
		return nil, err
	}
	if p.Reflectivity, err = r.unitFloat("reflection", &zero); err != nil {
		return nil, err
	}
	if p.Transparency, err = r.unitFloat("transparency", &zero); err != nil {
		return nil, err
	}

	if p.Shininess, err = r.optionalFloat(material.DefaultShininess, "k_n"); err != nil {
		return nil, err
	}
	if p.Shininess < 0 {
		return nil, r.invalid("k_n", "must be >= 0")
	}

	if p.CheckerSize, err = r.optionalFloat(0, "checkerboard"); err != nil {
		return nil, err
	}
	if p.CheckerSize < 0 {
		return nil, r.invalid("checkerboard", "must be >= 0")
	}
	if p.CheckerColor, err = r.optionalColor("checker_color", material.Complement(p.Color)); err != nil {
		return nil, err
	}

	return material.New(p), nil
}

func buildSphere(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error) {
	center, err := r.requiredVec("center")
	if err != nil {
		return nil, err
	}
	radius, err := r.requiredFloat("radius", "r")
	if err != nil {
		return nil, err
	}
	return []geometry.Primitive{geometry.NewSphere(center, radius, mat)}, nil
}

func buildPlane(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error) {
	point, err := r.requiredVec("point")
	if err != nil {
		return nil, err
	}
	normal, err := r.requiredVec("normal")
	if err != nil {
		return nil, err
	}
	return []geometry.Primitive{geometry.NewPlane(point, normal, mat)}, nil
}

func buildDisc(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error) {
	center, err := r.requiredVec("center")
	if err != nil {
		return nil, err
	}
	normal, err := r.requiredVec("normal")
	if err != nil {
		return nil, err
	}
	radius, err := r.requiredFloat("radius", "r")
	if err != nil {
		return nil, err
	}
	return []geometry.Primitive{geometry.NewDisc(center, normal, radius, mat)}, nil
}

func buildCylinder(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error) {
	point, err := r.requiredVec("point", "center")
	if err != nil {
		return nil, err
	}
	axis, err := r.requiredVec("axis")
	if err != nil {
		return nil, err
	}
	radius, err := r.requiredFloat("radius", "r")
	if err != nil {
		return nil, err
	}
	return []geometry.Primitive{geometry.NewCylinder(point, axis, radius, mat)}, nil
}

func buildTriangle(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error) {
	var v [3]core.Vec3
	for i, key := range []string{"v0", "v1", "v2"} {
		var err error
		if v[i], err = r.requiredVec(key); err != nil {
			return nil, err
		}
	}
	return []geometry.Primitive{geometry.NewTriangle(v[0], v[1], v[2], mat)}, nil
}

// buildMesh expands a PLY file into triangles sharing one material
func buildMesh(r *sectionReader, mat *material.Material) ([]geometry.Primitive, error) {
	file, err := r.requiredString("file")
	if err != nil {
		return nil, err
	}
	offset, err := r.optionalVec("offset", core.Vec3{})
	if err != nil {
		return nil, err
	}
	scale, err := r.optionalFloat(1, "scale")
	if err != nil {
		return nil, err
	}
	if !(scale > 0) {
		return nil, r.invalid("scale", "must be > 0")
	}

	if !filepath.IsAbs(file) {
		file = filepath.Join(r.dir, file)
	}
	data, err := LoadPLY(file)
	if err != nil {
		return nil, &ConfigValidationError{Path: r.path, Section: r.sec.Name(), Key: "file", Reason: "failed to load mesh", Err: err}
	}

	transform := func(v core.Vec3) core.Vec3 {
		return v.Multiply(scale).Add(offset)
	}

	prims := make([]geometry.Primitive, 0, data.TriangleCount())
	degenerate := 0
	for i := 0; i < data.TriangleCount(); i++ {
		v0, v1, v2 := data.Triangle(i)
		tri := geometry.NewTriangle(transform(v0), transform(v1), transform(v2), mat)
		if tri.Degenerate() {
			degenerate++
		}
		prims = append(prims, tri)
	}

	if degenerate > 0 {
		logger.Warningf("%s: [%s] %d of %d mesh triangles are degenerate", r.path, r.sec.Name(), degenerate, len(prims))
	}
	return prims, nil
}

func buildLight(r *sectionReader) (*lights.PointLight, error) {
	position, err := r.requiredVec("position")
	if err != nil {
		return nil, err
	}
	intensity, err := r.requiredFloat("intensity", "i_p")
	if err != nil {
		return nil, err
	}
	if intensity < 0 {
		return nil, r.invalid(r.keyName("intensity", "i_p"), "must be >= 0")
	}

	light := lights.NewPointLight(position, intensity)
	if light.Color, err = r.optionalColor("color", core.White); err != nil {
		return nil, err
	}
	if light.Constant, err = r.optionalFloat(lights.DefaultConstant, "c_1", "c1"); err != nil {
		return nil, err
	}
	if light.Linear, err = r.optionalFloat(lights.DefaultLinear, "c_2", "c2"); err != nil {
		return nil, err
	}
	if light.Quadratic, err = r.optionalFloat(lights.DefaultQuadratic, "c_3", "c3"); err != nil {
		return nil, err
	}
	return light, nil
}

// LoadObserver loads the observer pose and projection plane of an INI file.
// [camera] with [projection] is the primary form; [camera] with a legacy
// [plane] holding z, x_min, x_max, y_min and y_max is also accepted.
func LoadObserver(path string) (*ObserverFile, error) {
	cfg, err := loadINI(path)
	if err != nil {
		return nil, err
	}

	camera, err := uniqueSection(cfg, path, sectionCamera)
	if err != nil {
		return nil, err
	}
	if camera == nil {
		return nil, &ConfigValidationError{Path: path, Section: sectionCamera, Key: "position", Reason: "missing required key"}
	}
	cr := &sectionReader{path: path, sec: camera}
	position, err := cr.requiredVec("position")
	if err != nil {
		return nil, err
	}

	projection, err := uniqueSection(cfg, path, sectionProjection)
	if err != nil {
		return nil, err
	}
	if projection != nil {
		return readProjection(cr, &sectionReader{path: path, sec: projection}, position)
	}

	legacy, err := uniqueSection(cfg, path, sectionPlane)
	if err != nil {
		return nil, err
	}
	if legacy != nil {
		return readLegacyPlane(cr, &sectionReader{path: path, sec: legacy}, position)
	}

	return nil, &ConfigValidationError{Path: path, Section: sectionProjection, Reason: "missing projection section"}
}

func uniqueSection(cfg *ini.File, path, name string) (*ini.Section, error) {
	secs, err := cfg.SectionsByName(name)
	if err != nil || len(secs) == 0 {
		return nil, nil
	}
	if len(secs) > 1 {
		return nil, &ConfigValidationError{Path: path, Section: name, Reason: "duplicate section name"}
	}
	return secs[0], nil
}

func readProjection(cr, pr *sectionReader, position core.Vec3) (*ObserverFile, error) {
	if cr.has("look_at") && cr.has("forward") {
		return nil, cr.invalid("forward", "look_at and forward are mutually exclusive")
	}

	forward, err := cr.optionalVec("forward", DefaultForward)
	if err != nil {
		return nil, err
	}
	if cr.has("look_at") {
		target, err := cr.requiredVec("look_at")
		if err != nil {
			return nil, err
		}
		forward = target.Subtract(position)
	}
	up, err := cr.optionalVec("up", DefaultUp)
	if err != nil {
		return nil, err
	}

	observer, err := scene.NewObserver(position, forward, up)
	if err != nil {
		return nil, &ConfigValidationError{Path: cr.path, Section: cr.sec.Name(), Reason: "invalid orientation", Err: err}
	}

	var plane scene.ProjectionPlane
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"distance", &plane.Distance},
		{"width", &plane.Width},
		{"height", &plane.Height},
	} {
		if *f.dst, err = pr.requiredFloat(f.key); err != nil {
			return nil, err
		}
		if !(*f.dst > 0) {
			return nil, pr.invalid(f.key, "must be > 0")
		}
	}

	return &ObserverFile{Observer: observer, Plane: plane}, nil
}

// readLegacyPlane maps an axis-aligned projection rectangle at constant z onto an
// observer looking along ±z with +y up. The basis is built by NewObserver, so the
// legacy and [projection] forms agree on handedness: +x is on the right when
// looking down +z.
func readLegacyPlane(cr, pr *sectionReader, position core.Vec3) (*ObserverFile, error) {
	z, err := pr.optionalFloat(0, "z")
	if err != nil {
		return nil, err
	}
	var bounds [4]float64
	for i, key := range []string{"x_min", "x_max", "y_min", "y_max"} {
		if bounds[i], err = pr.requiredFloat(key); err != nil {
			return nil, err
		}
	}
	xMin, xMax, yMin, yMax := bounds[0], bounds[1], bounds[2], bounds[3]

	if !(xMax > xMin) {
		return nil, pr.invalid("x_max", "must be greater than x_min")
	}
	if !(yMax > yMin) {
		return nil, pr.invalid("y_max", "must be greater than y_min")
	}
	distance := math.Abs(z - position.Z)
	if distance < core.Epsilon {
		return nil, pr.invalid("z", "plane contains the camera position")
	}

	forward := core.NewVec3(0, 0, math.Copysign(1, z-position.Z))
	observer, err := scene.NewObserver(position, forward, DefaultUp)
	if err != nil {
		return nil, &ConfigValidationError{Path: cr.path, Section: cr.sec.Name(), Reason: "invalid orientation", Err: err}
	}

	return &ObserverFile{
		Observer: observer,
		Plane: scene.ProjectionPlane{
			Distance:    distance,
			Width:       xMax - xMin,
			Height:      yMax - yMin,
			OffsetRight: ((xMin+xMax)/2 - position.X) * observer.Right.X,
			OffsetUp:    (yMin+yMax)/2 - position.Y,
		},
	}, nil
}

// sectionReader reads typed values from one INI section
type sectionReader struct {
	path string
	dir  string // Directory of the file, for relative paths
	sec  *ini.Section
}

func (r *sectionReader) invalid(key, reason string) error {
	return &ConfigValidationError{Path: r.path, Section: r.sec.Name(), Key: key, Reason: reason}
}

func (r *sectionReader) has(key string) bool {
	return r.sec.HasKey(key)
}

// keyName returns the first of keys present in the section, or the first key
func (r *sectionReader) keyName(keys ...string) string {
	for _, k := range keys {
		if r.sec.HasKey(k) {
			return k
		}
	}
	return keys[0]
}

// lookup returns the value of the first key present, trimmed of whitespace
func (r *sectionReader) lookup(keys ...string) (string, string, bool) {
	key := r.keyName(keys...)
	if !r.sec.HasKey(key) {
		return key, "", false
	}
	return key, strings.TrimSpace(r.sec.Key(key).String()), true
}

func (r *sectionReader) requiredString(keys ...string) (string, error) {
	key, value, ok := r.lookup(keys...)
	if !ok || value == "" {
		return "", r.invalid(key, "missing required key")
	}
	return value, nil
}

func (r *sectionReader) requiredFloat(keys ...string) (float64, error) {
	key, value, ok := r.lookup(keys...)
	if !ok {
		return 0, r.invalid(key, "missing required key")
	}
	return r.parseFloat(key, value)
}

func (r *sectionReader) optionalFloat(def float64, keys ...string) (float64, error) {
	key, value, ok := r.lookup(keys...)
	if !ok {
		return def, nil
	}
	return r.parseFloat(key, value)
}

// unitFloat reads a coefficient in [0,1]; a nil default makes the key required
func (r *sectionReader) unitFloat(key string, def *float64) (float64, error) {
	var v float64
	var err error
	if def == nil {
		v, err = r.requiredFloat(key)
	} else {
		v, err = r.optionalFloat(*def, key)
	}
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, r.invalid(key, fmt.Sprintf("value %v out of range [0,1]", v))
	}
	return v, nil
}

func (r *sectionReader) requiredInt(key string) (int, error) {
	_, value, ok := r.lookup(key)
	if !ok {
		return 0, r.invalid(key, "missing required key")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, r.invalid(key, fmt.Sprintf("invalid integer %q", value))
	}
	return n, nil
}

func (r *sectionReader) parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, r.invalid(key, fmt.Sprintf("invalid number %q", value))
	}
	return v, nil
}

func (r *sectionReader) requiredVec(keys ...string) (core.Vec3, error) {
	key, value, ok := r.lookup(keys...)
	if !ok {
		return core.Vec3{}, r.invalid(key, "missing required key")
	}
	v, err := ParseVec3(value)
	if err != nil {
		return core.Vec3{}, &ConfigValidationError{Path: r.path, Section: r.sec.Name(), Key: key, Reason: "invalid vector", Err: err}
	}
	return v, nil
}

func (r *sectionReader) optionalVec(key string, def core.Vec3) (core.Vec3, error) {
	if !r.has(key) {
		return def, nil
	}
	return r.requiredVec(key)
}

func (r *sectionReader) requiredColor(key string) (core.Vec3, error) {
	_, value, ok := r.lookup(key)
	if !ok {
		return core.Vec3{}, r.invalid(key, "missing required key")
	}
	c, err := ParseHexColor(value)
	if err != nil {
		return core.Vec3{}, &ConfigValidationError{Path: r.path, Section: r.sec.Name(), Key: key, Reason: "invalid color", Err: err}
	}
	return c, nil
}

func (r *sectionReader) optionalColor(key string, def core.Vec3) (core.Vec3, error) {
	if !r.has(key) {
		return def, nil
	}
	return r.requiredColor(key)
}

// ParseVec3 parses "x, y, z", optionally wrapped in parentheses or brackets
func ParseVec3(s string) (core.Vec3, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Vec3{}, errors.New("empty vector")
	}

	for _, pair := range []string{"()", "[]"} {
		if s[0] != pair[0] {
			continue
		}
		if s[len(s)-1] != pair[1] {
			return core.Vec3{}, fmt.Errorf("missing closing %q", pair[1])
		}
		s = s[1 : len(s)-1]
		break
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(parts))
	}

	var xyz [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Vec3{}, fmt.Errorf("invalid component %q", strings.TrimSpace(part))
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// ParseHexColor parses a #RRGGBB color into linear [0,1] components
func ParseHexColor(s string) (core.Vec3, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return core.Vec3{}, fmt.Errorf("expected #RRGGBB, got %q", s)
	}

	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("expected #RRGGBB, got %q", s)
		}
		rgb[i] = float64(v) / 255.0
	}
	return core.NewVec3(rgb[0], rgb[1], rgb[2]), nil
}
