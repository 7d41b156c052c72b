package flyingcam

import (
	"math/rand"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/activerecon/activerecon/recon"
)

// PointCloud is one unit of sensor data as it travels over the Bus.
type PointCloud struct {
	ID      string
	Channel string
	Origin  recon.Pose
	Points  []r3.Vec
}

// Synthetic clouds are a patch of points at roughly sampleDepth along the camera's
// viewing axis (+X in the camera frame).
const (
	sampleDepth  = 1.0
	sampleSpread = 0.25
)

// sampleCloud builds a synthetic cloud seen from origin.
func sampleCloud(origin recon.Pose, channel string, n int, rng *rand.Rand) PointCloud {
	points := make([]r3.Vec, 0, n)
	for i := 0; i < n; i++ {
		local := r3.Vec{
			X: sampleDepth + rng.NormFloat64()*sampleSpread*0.1,
			Y: (rng.Float64()*2 - 1) * sampleSpread,
			Z: (rng.Float64()*2 - 1) * sampleSpread,
		}
		points = append(points, r3.Add(origin.Position, rotate(origin.Orientation, local)))
	}
	return PointCloud{
		ID:      uuid.New().String(),
		Channel: channel,
		Origin:  origin,
		Points:  points,
	}
}

// rotate applies the unit quaternion q to v as q·v·q*.
func rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}
