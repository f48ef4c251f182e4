package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position [3]float64 `yaml:"position"`
	// Yaw is in degrees; 0 faces +Z.
	Yaw float64 `yaml:"yaw"`
}

type PlayerComponentSpec struct {
	WalkingSpeed        float64  `yaml:"walking_speed"`
	RunningSpeed        float64  `yaml:"running_speed"`
	SprintingSpeed      float64  `yaml:"sprinting_speed"`
	RotationSpeed       float64  `yaml:"rotation_speed"`
	Snapping            bool     `yaml:"snapping"`
	LeapingSpeed        float64  `yaml:"leaping_speed"`
	FallingAcceleration float64  `yaml:"falling_acceleration"`
	ProbeRadius         float64  `yaml:"probe_radius"`
	ProbeHeightOffset   float64  `yaml:"probe_height_offset"`
	MaxProbeDistance    float64  `yaml:"max_probe_distance"`
	GroundLayers        []string `yaml:"ground_layers"`
	Gravity             float64  `yaml:"gravity"`
	JumpHeight          float64  `yaml:"jump_height"`
	SnapTime            float64  `yaml:"snap_time"`
}

type PhysicsBodyComponentSpec struct {
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type CameraComponentSpec struct {
	Target                 string   `yaml:"target"`
	FollowSmoothTime       float64  `yaml:"follow_smooth_time"`
	LookSpeed              float64  `yaml:"look_speed"`
	PivotSpeed             float64  `yaml:"pivot_speed"`
	SmoothTime             float64  `yaml:"smooth_time"`
	MinPitch               float64  `yaml:"min_pitch"`
	MaxPitch               float64  `yaml:"max_pitch"`
	PivotHeight            float64  `yaml:"pivot_height"`
	DefaultDistance        float64  `yaml:"default_distance"`
	CollisionRadius        float64  `yaml:"collision_radius"`
	CollisionOffset        float64  `yaml:"collision_offset"`
	MinimumCollisionOffset float64  `yaml:"minimum_collision_offset"`
	CollisionSmoothing     float64  `yaml:"collision_smoothing"`
	CollisionLayers        []string `yaml:"collision_layers"`
}

type AnimationClipSpec struct {
	Duration float64         `yaml:"duration"`
	Loop     bool            `yaml:"loop"`
	Resets   map[string]bool `yaml:"resets"`
}

type AnimatorComponentSpec struct {
	DefaultClip string                       `yaml:"default_clip"`
	CrossFade   *float64                     `yaml:"cross_fade"`
	Interacting *bool                        `yaml:"interacting"`
	Clips       map[string]AnimationClipSpec `yaml:"clips"`
}

type LocomotionAnimationComponentSpec struct {
	Snapping bool     `yaml:"snapping"`
	DampTime *float64 `yaml:"damp_time"`
}
