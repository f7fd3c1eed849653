package sample

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ytget/intune-dash/internal/model"
)

// Device table generation bounds
const (
	DeviceIDBase     = 100
	PolicyApplied    = "Applied"
	ComplianceJitter = 0.5
)

// Check-in timestamps fall on 2025-08-10..20 between 10:10 and 23:59
const (
	checkInYear     = 2025
	checkInMonth    = time.August
	checkInDayMin   = 10
	checkInDayMax   = 20
	checkInHourMin  = 10
	checkInHourMax  = 23
	checkInMinMin   = 10
	checkInMinMax   = 59
	maxDeviceSample = 500
)

// OperatingSystems lists the OS values a device details view may show
var OperatingSystems = []string{"Windows 10", "Windows 11"}

// Generator produces the random data shown by the dashboards. It is safe for
// concurrent use; the chart ticker and the UI thread share one instance.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	fleet model.Fleet
	seed  uint64
}

// New creates a generator. A zero seed picks a random one.
func New(seed uint64, fleet model.Fleet) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		fleet: fleet,
		seed:  seed,
	}
}

// Seed returns the seed the generator was created with
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Fleet returns the headline numbers the generator is built around
func (g *Generator) Fleet() model.Fleet {
	return g.fleet
}

// Devices returns n device rows DEV100, DEV101, ...
func (g *Generator) Devices(n int) []model.Device {
	if n <= 0 {
		return nil
	}
	if n > maxDeviceSample {
		n = maxDeviceSample
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	devices := make([]model.Device, n)
	for i := range devices {
		compliance := model.ComplianceCompliant
		if g.rng.IntN(2) == 1 {
			compliance = model.ComplianceNonCompliant
		}
		devices[i] = model.Device{
			ID:          fmt.Sprintf("DEV%d", DeviceIDBase+i),
			User:        fmt.Sprintf("User %d", i+1),
			Compliance:  compliance,
			LastCheckIn: g.checkInLocked(),
			Status:      model.DeviceStatusActive,
		}
	}
	return devices
}

// Details reveals the extra fields of a device
func (g *Generator) Details(d model.Device) model.DeviceDetails {
	g.mu.Lock()
	osName := OperatingSystems[g.rng.IntN(len(OperatingSystems))]
	g.mu.Unlock()

	return model.DeviceDetails{
		Device:      d,
		OS:          osName,
		PolicyState: PolicyApplied,
	}
}

// Compliance returns the next pie chart frame: the fleet compliance rate and
// its complement, each jittered by up to half a percent.
func (g *Generator) Compliance() model.ComplianceSample {
	g.mu.Lock()
	defer g.mu.Unlock()

	rate := float64(g.fleet.ComplianceRate)
	return model.ComplianceSample{
		Compliant:    math.Max(0, rate+g.jitterLocked()),
		NonCompliant: math.Max(0, 100-rate+g.jitterLocked()),
	}
}

// Stats returns the analytics cards
func (g *Generator) Stats() []model.Field {
	return g.fleet.Stats()
}

func (g *Generator) jitterLocked() float64 {
	return (g.rng.Float64()*2 - 1) * ComplianceJitter
}

func (g *Generator) checkInLocked() time.Time {
	day := between(g.rng, checkInDayMin, checkInDayMax)
	hour := between(g.rng, checkInHourMin, checkInHourMax)
	minute := between(g.rng, checkInMinMin, checkInMinMax)
	return time.Date(checkInYear, checkInMonth, day, hour, minute, 0, 0, time.Local)
}

// between returns a random int in [lo, hi]
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
