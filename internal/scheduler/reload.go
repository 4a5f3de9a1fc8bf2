package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ReloadFunc 원본 데이터 재로딩
type ReloadFunc func() error

// Reloader cron 표현식에 따라 원본 데이터를 다시 읽는다
type Reloader struct {
	spec   string
	reload ReloadFunc
	cron   *cron.Cron

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastError error
}

// NewReloader 표현식 검증 후 생성 (아직 시작하지 않음)
// spec 은 표준 5필드 cron 또는 @every 1h 같은 서술자
func NewReloader(spec string, reload ReloadFunc) (*Reloader, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}

	r := &Reloader{
		spec:   spec,
		reload: reload,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
	if _, err := r.cron.AddFunc(spec, r.Trigger); err != nil {
		return nil, fmt.Errorf("schedule reload: %w", err)
	}
	return r, nil
}

// Start 스케줄 시작
func (r *Reloader) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.cron.Start()
	r.running = true
	log.Printf("dataset reload scheduled: %s", r.spec)
}

// Stop 스케줄 중지, 실행 중인 재로딩이 끝날 때까지 기다린다
func (r *Reloader) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	<-r.cron.Stop().Done()
}

// Trigger 즉시 한 번 재로딩
func (r *Reloader) Trigger() {
	start := time.Now()
	err := r.reload()

	r.mu.Lock()
	r.lastRun = start
	r.lastError = err
	r.mu.Unlock()

	if err != nil {
		log.Printf("scheduled dataset reload failed after %v: %v", time.Since(start), err)
		return
	}
	log.Printf("scheduled dataset reload completed in %v", time.Since(start))
}

// Spec cron 표현식
func (r *Reloader) Spec() string {
	return r.spec
}

// Next 다음 실행 예정 시각 (시작 전이면 zero)
func (r *Reloader) Next() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// LastRun 마지막 실행 시각과 결과
func (r *Reloader) LastRun() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun, r.lastError
}
