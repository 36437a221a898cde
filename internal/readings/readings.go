package readings

import (
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/temp2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/qdm12/reprint"
)

const DefaultHistorySize = 60

// Reading is the state of a single sensor as seen by the poller.
type Reading struct {
	SensorId string    `json:"id"`
	Label    string    `json:"label"`
	Text     string    `json:"text"`
	Value    int       `json:"value"`
	Time     time.Time `json:"time"`
	Samples  int       `json:"samples"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Avg      float64   `json:"avg"`
	History  []float64 `json:"history"`
}

type entry struct {
	mu      sync.Mutex
	reading Reading
	window  *rolling.PointPolicy
}

// Store keeps the latest value and a short history for every sensor.
type Store struct {
	historySize int
	entries     cmap.ConcurrentMap[string, *entry]
}

func NewStore(historySize int) *Store {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Store{
		historySize: historySize,
		entries:     cmap.New[*entry](),
	}
}

// Record appends a new value for the given sensor
func (s *Store) Record(sensorId string, label string, value int, text string) {
	e := s.entries.Upsert(sensorId, nil, func(exist bool, valueInMap *entry, newValue *entry) *entry {
		if exist {
			return valueInMap
		}
		return &entry{
			reading: Reading{SensorId: sensorId},
			window:  util.CreateRollingWindow(s.historySize),
		}
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	e.window.Append(float64(value))
	e.reading.Label = label
	e.reading.Text = text
	e.reading.Value = value
	e.reading.Time = time.Now()
	e.reading.Samples++

	history := s.history(e)
	e.reading.History = history
	e.reading.Min = util.Min(history)
	e.reading.Max = util.Max(history)
	e.reading.Avg = util.Avg(history)
}

// history returns the values in the window, oldest first.
// Buckets that were never written to are skipped.
func (s *Store) history(e *entry) []float64 {
	filled := e.reading.Samples
	if filled > s.historySize {
		filled = s.historySize
	}

	var buckets [][]float64
	e.window.Reduce(func(w rolling.Window) float64 {
		buckets = make([][]float64, len(w))
		copy(buckets, w)
		return 0
	})

	// the oldest value lives in the bucket that will be overwritten next
	start := 0
	if e.reading.Samples > s.historySize {
		start = e.reading.Samples % s.historySize
	}

	result := make([]float64, 0, filled)
	for i := 0; i < filled; i++ {
		bucket := buckets[(start+i)%len(buckets)]
		if len(bucket) > 0 {
			result = append(result, bucket[len(bucket)-1])
		}
	}
	return result
}

// Get returns a copy of the reading of the given sensor
func (s *Store) Get(sensorId string) (Reading, bool) {
	e, exists := s.entries.Get(sensorId)
	if !exists {
		return Reading{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	result := e.reading
	if result.History != nil {
		result.History = reprint.This(result.History).([]float64)
	}
	return result, true
}

// Snapshot returns a copy of all readings, keyed by sensor id
func (s *Store) Snapshot() map[string]Reading {
	result := map[string]Reading{}
	for _, id := range s.entries.Keys() {
		if reading, ok := s.Get(id); ok {
			result[id] = reading
		}
	}
	return result
}

func (s *Store) Remove(sensorId string) {
	s.entries.Remove(sensorId)
}

func (s *Store) Clear() {
	s.entries.Clear()
}
