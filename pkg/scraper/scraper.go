// Package scraper simulates a competitor scraping run. No network I/O is
// performed: each source costs a fixed delay and the final counts are random.
package scraper

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

var (
	ErrNoSources    = errors.New("no sites selected: select at least one competitor site or add a custom URL")
	ErrInProgress   = errors.New("a scraping job is already running")
	ErrUnknownCity  = errors.New("unknown target city")
	ErrJobNotActive = errors.New("scraping job is not running")
)

const (
	DefaultStepDelay = 2 * time.Second
	DefaultCity      = "amsterdam"

	// minutesPerStep is what the form shows as the estimated duration.
	minutesPerStep = 2
)

// Cities are the supported target cities keyed by slug.
var Cities = map[string]string{
	"amsterdam": "Amsterdam",
	"rotterdam": "Rotterdam",
	"den-haag":  "Den Haag",
	"utrecht":   "Utrecht",
}

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

type Request struct {
	Sources   []string
	CustomURL string
	City      string
}

// Steps is the number of simulated steps: one per source plus the custom URL.
func (r Request) Steps() int {
	n := len(r.Sources)
	if strings.TrimSpace(r.CustomURL) != "" {
		n++
	}
	return n
}

// Estimate is the duration shown before starting.
func Estimate(r Request) time.Duration {
	return time.Duration(r.Steps()*minutesPerStep) * time.Minute
}

type Result struct {
	TotalProperties   int       `json:"total_properties"`
	NewProperties     int       `json:"new_properties"`
	UpdatedProperties int       `json:"updated_properties"`
	ScrapedSites      int       `json:"scraped_sites"`
	Timestamp         time.Time `json:"timestamp"`
}

// Progress is the observable state of a job.
type Progress struct {
	JobID   string  `json:"job_id"`
	Status  Status  `json:"status"`
	Step    int     `json:"step"`
	Steps   int     `json:"steps"`
	Current string  `json:"current,omitempty"`
	Percent float64 `json:"percent"`
	City    string  `json:"city"`
	Result  *Result `json:"result,omitempty"`
}

// Simulator runs at most one job at a time.
type Simulator struct {
	mu sync.Mutex

	clock     scheduler.Scheduler
	stepDelay time.Duration
	rng       *rand.Rand

	running   bool
	job       *Progress
	targets   []string
	timer     scheduler.Timer
	last      *Result
	listeners []func(Progress)
}

type Option func(*Simulator)

// WithRand injects the random source used for the summary counts.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

func WithStepDelay(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.stepDelay = d
		}
	}
}

func NewSimulator(clock scheduler.Scheduler, opts ...Option) *Simulator {
	s := &Simulator{
		clock:     clock,
		stepDelay: DefaultStepDelay,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnProgress registers a listener called after every step and on completion.
func (s *Simulator) OnProgress(fn func(Progress)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Start validates the request and schedules the first step. A rejected
// request leaves the simulator untouched.
func (s *Simulator) Start(req Request) (Progress, error) {
	if req.Steps() == 0 {
		return Progress{}, ErrNoSources
	}
	city := req.City
	if city == "" {
		city = DefaultCity
	}
	if _, ok := Cities[city]; !ok {
		return Progress{}, ErrUnknownCity
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return Progress{}, ErrInProgress
	}

	targets := make([]string, 0, req.Steps())
	targets = append(targets, req.Sources...)
	if url := strings.TrimSpace(req.CustomURL); url != "" {
		targets = append(targets, url)
	}

	s.running = true
	s.targets = targets
	s.job = &Progress{
		JobID:   uuid.NewString(),
		Status:  StatusRunning,
		Steps:   len(targets),
		Current: targets[0],
		City:    city,
	}
	s.timer = s.clock.AfterFunc(s.stepDelay, s.step)
	snap := *s.job
	s.mu.Unlock()

	s.notify(snap)
	return snap, nil
}

func (s *Simulator) step() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	job := s.job
	job.Step++
	if job.Step >= job.Steps {
		job.Percent = 100
		job.Current = ""
		job.Status = StatusCompleted
		job.Result = s.summary(job.Steps)
		s.last = job.Result
		s.running = false
		s.timer = nil
	} else {
		job.Percent = float64(job.Step) / float64(job.Steps) * 100
		job.Current = s.targets[job.Step]
		s.timer = s.clock.AfterFunc(s.stepDelay, s.step)
	}
	snap := *job
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Simulator) summary(sites int) *Result {
	return &Result{
		TotalProperties:   s.rng.Intn(50) + 20,
		NewProperties:     s.rng.Intn(15) + 5,
		UpdatedProperties: s.rng.Intn(10) + 3,
		ScrapedSites:      sites,
		Timestamp:         s.clock.Now(),
	}
}

// Cancel stops the running job when its view is left.
func (s *Simulator) Cancel() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrJobNotActive
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.running = false
	s.job.Status = StatusCanceled
	snap := *s.job
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Current returns the latest job, if any.
func (s *Simulator) Current() (Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return Progress{}, false
	}
	return *s.job, true
}

// LastResult returns the summary of the last completed job.
func (s *Simulator) LastResult() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

func (s *Simulator) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Simulator) notify(p Progress) {
	s.mu.Lock()
	listeners := make([]func(Progress), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
}
