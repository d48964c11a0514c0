package kinematics

// Model is a constant-acceleration snapshot of a body.
type Model struct {
	Pos Vec
	Vel Vec
	Acc Vec
}

// Snapshot copies the current kinematic state of a.
func Snapshot(a Acceleration) Model {
	return Model{Pos: a.Position(), Vel: a.Velocity(), Acc: a.Acceleration()}
}

func (m Model) Position() Vec     { return m.Pos }
func (m Model) Velocity() Vec     { return m.Vel }
func (m Model) Acceleration() Vec { return m.Acc }

// After returns the model advanced by seconds.
func (m Model) After(seconds float64) Model {
	return Model{Pos: PositionAfter(m, seconds), Vel: VelocityAfter(m, seconds), Acc: m.Acc}
}

// Pose is a position with a heading and turn rate.
type Pose struct {
	Pos  Vec
	Dir  float64
	Turn float64
}

func (p Pose) Position() Vec            { return p.Pos }
func (p Pose) Heading() float64         { return p.Dir }
func (p Pose) AngularVelocity() float64 { return p.Turn }
