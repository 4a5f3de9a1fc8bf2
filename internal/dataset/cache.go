package dataset

import (
	"sync"
)

// LoadFunc 테이블을 한 번 만들어 내는 함수
type LoadFunc func() (*Table, LoadReport, error)

// Cache 로딩한 테이블을 프로세스 수명 동안 재사용
//
// 첫 Get 에서 로딩하고 이후에는 같은 테이블을 돌려준다. 원본을 다시 읽는 것은 Reload 뿐이다.
type Cache struct {
	load LoadFunc

	mu     sync.RWMutex
	table  *Table
	report LoadReport
	loaded bool

	loadMu sync.Mutex // 동시에 두 번 로딩하지 않도록
}

// NewCache 캐시 생성 (로딩은 지연)
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// NewCacheFromOptions 파일 로더로 캐시 생성
func NewCacheFromOptions(opts LoadOptions) *Cache {
	return NewCache(func() (*Table, LoadReport, error) {
		return Load(opts)
	})
}

// Get 캐시된 테이블, 아직 없으면 로딩
func (c *Cache) Get() (*Table, error) {
	c.mu.RLock()
	if c.loaded {
		t := c.table
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.RLock()
	if c.loaded {
		t := c.table
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	return c.doLoad()
}

// Reload 원본을 다시 읽는다. 실패하면 기존 테이블을 유지한다.
func (c *Cache) Reload() (*Table, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.doLoad()
}

func (c *Cache) doLoad() (*Table, error) {
	table, report, err := c.load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.table = table
	c.report = report
	c.loaded = true
	c.mu.Unlock()
	return table, nil
}

// Loaded 로딩 완료 여부
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Report 마지막으로 성공한 로딩 결과
func (c *Cache) Report() LoadReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report
}
