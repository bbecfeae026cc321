// Package stratify draws one uniformly random eligible recording per hour of day for a device
//
// A device is accepted only when all 24 hour strata hold at least one eligible
// recording (matching device, duration above the minimum, parseable start time).
// Hours are walked in ascending order and the walk stops at the first empty
// stratum, so rejection depends only on the data while the pick inside each
// stratum depends on the random source
package stratify

import (
	"math/rand/v2"

	"stratsampler/internal/core/table"
)

// Rand is the slice of a random source the sampler needs; *rand.Rand satisfies it
type Rand interface {
	IntN(n int) int
}

// Sample is one accepted device: exactly one record per hour, indexed by hour
type Sample struct {
	DeviceID string
	Picks    [table.HoursPerDay]table.Record
}

// Records returns the picks in ascending hour order
func (s Sample) Records() []table.Record {
	out := make([]table.Record, 0, table.HoursPerDay)
	out = append(out, s.Picks[:]...)
	return out
}

// Rejection explains why a device was skipped
type Rejection struct {
	DeviceID string
	Hour     int // first hour with no eligible recording
	Eligible int // eligible recordings the device had across all hours
}

// Sampler is not safe for concurrent use when its Rand is not
type Sampler struct {
	rng Rand
}

// New constructs a Sampler drawing from rng
func New(rng Rand) *Sampler { return &Sampler{rng: rng} }

// NewSeeded constructs a Sampler over a PCG source; seed 0 means a fresh random seed
func NewSeeded(seed int64) *Sampler { return New(NewRand(seed)) }

// NewRand returns a PCG-backed *rand.Rand; seed 0 means a fresh random seed
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Buckets partitions the device's eligible records by hour of day
// records without a start time join no bucket
func Buckets(t table.Table, device string) (b [table.HoursPerDay][]int, eligible int) {
	for i, r := range t.Records {
		if !r.Eligible(device) {
			continue
		}
		h, ok := r.Hour()
		if !ok {
			continue
		}
		b[h] = append(b[h], i)
		eligible++
	}
	return b, eligible
}

// SampleDevice draws one record per hour for device, or reports the first uncovered hour
func (s *Sampler) SampleDevice(t table.Table, device string) (Sample, *Rejection) {
	buckets, eligible := Buckets(t, device)

	out := Sample{DeviceID: device}
	for h := 0; h < table.HoursPerDay; h++ {
		bucket := buckets[h]
		if len(bucket) == 0 {
			return Sample{}, &Rejection{DeviceID: device, Hour: h, Eligible: eligible}
		}
		out.Picks[h] = t.Records[bucket[s.rng.IntN(len(bucket))]]
	}
	return out, nil
}
