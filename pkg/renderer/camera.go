package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ErrInvalidConfig is returned for camera or render settings that cannot produce an image
var ErrInvalidConfig = errors.New("invalid configuration")

// CameraConfig contains all the parameters needed to set up a camera
type CameraConfig struct {
	AspectRatio     float64     `json:"aspectRatio,omitempty"`     // Ideal width / height
	ImageWidth      int         `json:"imageWidth,omitempty"`      // Rendered image width in pixels
	SamplesPerPixel int         `json:"samplesPerPixel,omitempty"` // Random samples for each pixel
	MaxDepth        int         `json:"maxDepth,omitempty"`        // Maximum ray bounces
	VFov            float64     `json:"vfov,omitempty"`            // Vertical field of view in degrees
	LookFrom        core.Point3 `json:"lookFrom,omitempty"`        // Camera position
	LookAt          core.Point3 `json:"lookAt,omitempty"`          // Point the camera looks at
	VUp             core.Vec3   `json:"vup,omitempty"`             // Camera-relative up direction
	DefocusAngle    float64     `json:"defocusAngle,omitempty"`    // Variation angle of rays through each pixel, in degrees
	FocusDist       float64     `json:"focusDist,omitempty"`       // Distance to the plane of perfect focus
}

// DefaultCameraConfig returns the camera used for the random-spheres scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      1200,
		SamplesPerPixel: 500,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6,
		FocusDist:       10.0,
	}
}

// CameraOverrides replaces selected fields of a CameraConfig. A nil field
// keeps the base value, so explicit zeros such as a defocus angle of 0 or a
// max depth of 0 still apply.
type CameraOverrides struct {
	AspectRatio     *float64     `json:"aspectRatio,omitempty"`
	ImageWidth      *int         `json:"imageWidth,omitempty"`
	SamplesPerPixel *int         `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int         `json:"maxDepth,omitempty"`
	VFov            *float64     `json:"vfov,omitempty"`
	LookFrom        *core.Point3 `json:"lookFrom,omitempty"`
	LookAt          *core.Point3 `json:"lookAt,omitempty"`
	VUp             *core.Vec3   `json:"vup,omitempty"`
	DefocusAngle    *float64     `json:"defocusAngle,omitempty"`
	FocusDist       *float64     `json:"focusDist,omitempty"`
}

// Apply returns base with every set field of o applied
func (o CameraOverrides) Apply(base CameraConfig) CameraConfig {
	result := base

	if o.AspectRatio != nil {
		result.AspectRatio = *o.AspectRatio
	}
	if o.ImageWidth != nil {
		result.ImageWidth = *o.ImageWidth
	}
	if o.SamplesPerPixel != nil {
		result.SamplesPerPixel = *o.SamplesPerPixel
	}
	if o.MaxDepth != nil {
		result.MaxDepth = *o.MaxDepth
	}
	if o.VFov != nil {
		result.VFov = *o.VFov
	}
	if o.LookFrom != nil {
		result.LookFrom = *o.LookFrom
	}
	if o.LookAt != nil {
		result.LookAt = *o.LookAt
	}
	if o.VUp != nil {
		result.VUp = *o.VUp
	}
	if o.DefocusAngle != nil {
		result.DefocusAngle = *o.DefocusAngle
	}
	if o.FocusDist != nil {
		result.FocusDist = *o.FocusDist
	}

	return result
}

// Validate reports the first setting that would make the projection undefined
func (c CameraConfig) Validate() error {
	switch {
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidConfig, c.AspectRatio)
	case c.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidConfig, c.ImageWidth)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical field of view must be in (0, 180) degrees, got %g", ErrInvalidConfig, c.VFov)
	case !(c.FocusDist > 0):
		return fmt.Errorf("%w: focus distance must be positive, got %g", ErrInvalidConfig, c.FocusDist)
	case c.DefocusAngle < 0 || math.IsNaN(c.DefocusAngle):
		return fmt.Errorf("%w: defocus angle must not be negative, got %g", ErrInvalidConfig, c.DefocusAngle)
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("%w: look-from and look-at are the same point %v", ErrInvalidConfig, c.LookFrom)
	}
	if c.VUp.Cross(view).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidConfig, c.VUp)
	}
	return nil
}

// Camera generates rays for rendering. Every field is derived once in NewCamera
// and read-only afterwards, so one Camera is shared by all render tasks.
type Camera struct {
	config CameraConfig

	imageHeight       int
	pixelSamplesScale float64
	center            core.Point3
	pixel00Loc        core.Point3
	pixelDeltaU       core.Vec3
	pixelDeltaV       core.Vec3
	u, v, w           core.Vec3 // Camera frame basis vectors
	defocusDiskU      core.Vec3
	defocusDiskV      core.Vec3
}

// NewCamera validates the configuration and derives the projection
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{config: config}

	c.imageHeight = max(1, int(float64(config.ImageWidth)/config.AspectRatio))
	c.pixelSamplesScale = 1.0 / float64(config.SamplesPerPixel)
	c.center = config.LookFrom

	// Viewport dimensions at the focus plane
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(c.imageHeight))

	c.w = config.LookFrom.Subtract(config.LookAt).Normalize()
	c.u = config.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(config.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDist)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c, nil
}

// GetRay returns a ray from the defocus disk through a random point in pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.config.ImageWidth }

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// SamplesPerPixel returns the number of rays traced for each pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the bounce budget for each camera ray
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// PixelSamplesScale returns 1 / SamplesPerPixel
func (c *Camera) PixelSamplesScale() float64 { return c.pixelSamplesScale }

// Center returns the camera position
func (c *Camera) Center() core.Point3 { return c.center }

// Basis returns the camera frame: u points right, v up and w backwards
func (c *Camera) Basis() (u, v, w core.Vec3) { return c.u, c.v, c.w }

// PixelCenter returns the world-space center of pixel (i, j) on the focus plane
func (c *Camera) PixelCenter(i, j int) core.Point3 {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}
