package services

import (
	"math/rand"

	"github.com/amine-amaach/dbstats/services/models"
)

type simService struct {
	rnd *rand.Rand
}

// NewSimService returns a reading simulator. The same seed yields the same readings.
func NewSimService(seed int64) *simService {
	return &simService{rnd: rand.New(rand.NewSource(seed))}
}

// SetLoad sets the reading load, a percentage.
func (svc *simService) SetLoad(r *models.Reading) {
	r.Load = svc.rnd.Intn(100)
}

// SetTemperature sets the reading temperature based on its load value.
func (svc *simService) SetTemperature(r *models.Reading) {
	var t float64
	switch {
	case r.Load >= 75:
		t = 210. + svc.rnd.Float64()*90. // between 210 and 300 exclusive
	case r.Load >= 50:
		t = 200. + svc.rnd.Float64()*10. // between 200 and 210 exclusive
	case r.Load >= 25:
		t = 190. + svc.rnd.Float64()*10. // between 190 and 200 exclusive
	case r.Load == 0:
		t = 160.
	default:
		t = 170. + svc.rnd.Float64()*20. // between 170 and 190 exclusive
	}
	r.Temperature = &t
}

// SetPower sets the reading power based on its load value.
func (svc *simService) SetPower(r *models.Reading) {
	var p float64
	switch {
	case r.Load >= 75:
		p = 2000. + svc.rnd.Float64()*600. // between 2000 and 2600 exclusive
	case r.Load >= 50:
		p = 1100. + svc.rnd.Float64()*900. // between 1100 and 2000 exclusive
	case r.Load >= 25:
		p = 500. + svc.rnd.Float64()*600. // between 500 and 1100 exclusive
	case r.Load == 0:
		p = 0.
	default:
		p = 100. + svc.rnd.Float64()*400. // between 100 and 500 exclusive
	}
	r.Power = &p
}

// SetFuelUsed sets the fuel burnt since the previous reading based on its load value.
func (svc *simService) SetFuelUsed(r *models.Reading) {
	var f float64
	switch {
	case r.Load >= 75:
		f = 90. + svc.rnd.Float64()*40. // between 90 and 130 exclusive
	case r.Load >= 50:
		f = 75. + svc.rnd.Float64()*15. // between 75 and 90 exclusive
	case r.Load >= 25:
		f = 50. + svc.rnd.Float64()*25. // between 50 and 75 exclusive
	case r.Load == 0:
		f = 0.
	default:
		f = 10. + svc.rnd.Float64()*40. // between 10 and 50 exclusive
	}
	r.FuelUsed = &f
}

// SetStatus derives the operating status from the load.
func (svc *simService) SetStatus(r *models.Reading) {
	switch {
	case r.Load == 0:
		r.Status = "idle"
	case r.Load >= 90:
		r.Status = "overload"
	default:
		r.Status = "running"
	}
}

// DropSamples blanks each measurement with probability p, the way a flaky
// sensor loses samples.
func (svc *simService) DropSamples(r *models.Reading, p float64) {
	if svc.rnd.Float64() < p {
		r.Temperature = nil
	}
	if svc.rnd.Float64() < p {
		r.Power = nil
	}
	if svc.rnd.Float64() < p {
		r.FuelUsed = nil
	}
}
