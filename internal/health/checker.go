// Package health probes the learning platform backend so the dashboard can
// show whether the console is talking to a live API.
package health

import (
	"log"
	"net/http"
	"sync"
	"time"
)

const (
	checkInterval = 5 * time.Minute
	probeTimeout  = 10 * time.Second
)

type Status struct {
	Reachable bool
	Latency   time.Duration
	CheckedAt time.Time
}

type Checker struct {
	target string
	client *http.Client

	mu     sync.RWMutex
	status Status
}

// NewChecker probes the given base URL. Any HTTP response counts as
// reachable; only transport-level failures mark the backend down.
func NewChecker(baseURL string) *Checker {
	return &Checker{
		target: baseURL,
		client: &http.Client{Timeout: probeTimeout},
	}
}

// Start probes immediately, then on a fixed interval until stop is closed.
func (c *Checker) Start(stop <-chan struct{}) {
	c.probe()

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.probe()
		case <-stop:
			return
		}
	}
}

func (c *Checker) probe() {
	start := time.Now()
	resp, err := c.client.Get(c.target)
	latency := time.Since(start)

	reachable := err == nil
	if err != nil {
		log.Printf("Backend probe failed: %v", err)
	} else {
		resp.Body.Close()
	}

	c.mu.Lock()
	c.status = Status{
		Reachable: reachable,
		Latency:   latency,
		CheckedAt: time.Now(),
	}
	c.mu.Unlock()
}

func (c *Checker) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}
