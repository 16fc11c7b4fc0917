// Package webcam provides a gocv-backed camera frame source for tinsel.
//
// Open a device and attach it to a scene:
//
//	cam, err := webcam.Open(webcam.DefaultConfig())
//	if err != nil {
//		scene.DisableGestures("camera unavailable, gesture control off")
//	} else {
//		scene.SetFrameSource(cam)
//	}
//
// The camera satisfies tinsel.FrameSource and io.Closer; Scene.Teardown
// closes it automatically.
package webcam

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/phanxgames/tinsel"
)

// Config holds capture device options.
type Config struct {
	// DeviceID selects the capture device (0 is the default camera).
	DeviceID int

	// Width and Height request a capture resolution; zero keeps the
	// driver default.
	Width  int
	Height int
}

// DefaultConfig returns a Config for the default camera at the driver's
// native resolution.
func DefaultConfig() Config {
	return Config{}
}

// Camera wraps a gocv VideoCapture as a tinsel.FrameSource. Not safe for
// concurrent use; tinsel's single-threaded model calls it from one task.
type Camera struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

var _ tinsel.FrameSource = (*Camera)(nil)

// Open opens the capture device described by cfg.
func Open(cfg Config) (*Camera, error) {
	cap, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("webcam: open device %d: %w", cfg.DeviceID, err)
	}
	if cfg.Width > 0 {
		cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	return &Camera{cap: cap, mat: gocv.NewMat()}, nil
}

// Ready reports whether the device is open and delivering frames.
func (c *Camera) Ready() bool {
	return c.cap != nil && c.cap.IsOpened()
}

// Frame grabs and decodes the current frame.
func (c *Camera) Frame() (image.Image, error) {
	if !c.Ready() {
		return nil, fmt.Errorf("webcam: device not open")
	}
	if ok := c.cap.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, fmt.Errorf("webcam: no frame")
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("webcam: decode frame: %w", err)
	}
	return img, nil
}

// Size returns the configured capture dimensions.
func (c *Camera) Size() (int, int) {
	if c.cap == nil {
		return 0, 0
	}
	return int(c.cap.Get(gocv.VideoCaptureFrameWidth)), int(c.cap.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the device and the frame buffer.
func (c *Camera) Close() error {
	if c.cap == nil {
		return nil
	}
	_ = c.mat.Close()
	err := c.cap.Close()
	c.cap = nil
	return err
}
