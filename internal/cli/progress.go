package cli

import (
	"fmt"
	"sync"
	"time"
)

var spinnerChars = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// ProgressSpinner renders a single updating line while a run is in
// flight: spinner glyph, rounds completed, requests issued, elapsed
// time. The line is cleared before the report prints.
type ProgressSpinner struct {
	mu           sync.Mutex
	spinnerIndex int
	startTime    time.Time
	roundsDone   int
	roundsTot    int
	requestsDone int
	requestsTot  int
	running      bool
	stopCh       chan struct{}
	doneCh       chan struct{}
}

func NewProgressSpinner() *ProgressSpinner {
	return &ProgressSpinner{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (p *ProgressSpinner) Start(roundCount, requestCount int) {
	p.mu.Lock()
	p.startTime = time.Now()
	p.roundsTot = roundCount
	p.requestsTot = requestCount
	p.roundsDone = 0
	p.requestsDone = 0
	p.running = true
	p.mu.Unlock()

	go p.run()
}

func (p *ProgressSpinner) run() {
	defer close(p.doneCh)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			p.clearLine()
			return
		case <-ticker.C:
			p.render()
		}
	}
}

func (p *ProgressSpinner) render() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}

	spinner := spinnerChars[p.spinnerIndex]
	p.spinnerIndex = (p.spinnerIndex + 1) % len(spinnerChars)

	elapsed := time.Since(p.startTime)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60

	line := fmt.Sprintf("%s%c Blasting...  [%d/%d rounds]  [%d/%d requests]  elapsed: %dm%02ds",
		Indent,
		spinner,
		p.roundsDone, p.roundsTot,
		p.requestsDone, p.requestsTot,
		mins, secs,
	)
	p.mu.Unlock()

	fmt.Printf("\r\033[K%s", line)
}

func (p *ProgressSpinner) clearLine() {
	fmt.Print("\r\033[K")
}

func (p *ProgressSpinner) Update(roundsDone, requestsDone int) {
	p.mu.Lock()
	p.roundsDone = roundsDone
	p.requestsDone = requestsDone
	p.mu.Unlock()
}

func (p *ProgressSpinner) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	<-p.doneCh
}
