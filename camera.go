package blendlab

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles Target at Distance. Yaw and Pitch are in radians and
// map one-to-one to the demo sliders.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	// OrbitSpeed is added to Yaw every frame, in radians.
	OrbitSpeed float32
}

func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Target:   mgl32.Vec3{0, 0, 0},
		Distance: 10,
	}
}

// Position is the eye point. Yaw 0, pitch 0 looks down -Z from +Z.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := mgl32.Vec3{
		c.Distance * cp * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(c.Pitch),
		c.Distance * cp * math32.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	return mgl32.LookAtV(c.Position(), c.Target, up)
}

// CameraModule installs the camera, or overwrites the one another module
// already installed.
type CameraModule struct {
	Camera OrbitCamera
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	if cam, ok := Resource[OrbitCamera](app); ok {
		*cam = m.Camera
	} else {
		cam := m.Camera
		cmd.AddResources(&cam)
	}
	app.UseSystem(System(cameraOrbitSystem).InStage(PreUpdate))
}

// ensureCamera gives modules that sort by depth a camera to sort against.
func ensureCamera(app *App, cmd *Commands) *OrbitCamera {
	if cam, ok := Resource[OrbitCamera](app); ok {
		return cam
	}
	cam := NewOrbitCamera()
	cmd.AddResources(cam)
	return cam
}

func cameraOrbitSystem(cam *OrbitCamera) {
	if cam.OrbitSpeed == 0 {
		return
	}
	cam.Yaw = math32.Mod(cam.Yaw+cam.OrbitSpeed, 2*math32.Pi)
}
