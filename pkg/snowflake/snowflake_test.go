package snowflake

import (
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
)

func TestGenID(t *testing.T) {
	id := GenID()
	if id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

// 多 goroutine 生成不重复
func TestGenID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, goroutines*perRoutine)
		dup int64
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenID()
				mu.Lock()
				if _, exists := ids[id]; exists {
					dup = id
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if dup != 0 {
		t.Fatalf("duplicate id found in concurrent test: %d", dup)
	}
}

// outbox 按 id 排序依赖单调递增
func TestGenID_Order(t *testing.T) {
	prev := GenID()
	for i := 0; i < 1000; i++ {
		curr := GenID()
		if curr <= prev {
			t.Fatalf("ids not increasing: prev=%d curr=%d", prev, curr)
		}
		prev = curr
	}
}

func TestNodeID(t *testing.T) {
	for _, seed := range []string{"", "10.0.0.1:8080/1", "10.0.0.1:9100/2", "host/42"} {
		id := NodeID(seed)
		if id < 0 || id > 1023 {
			t.Fatalf("node id out of range for %q: %d", seed, id)
		}
		if NodeID(seed) != id {
			t.Fatalf("node id not stable for %q", seed)
		}
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = Init(NodeID("test")) })

	if err := Init(1024); err == nil {
		t.Fatal("expected error for node 1024")
	}
	if err := Init(-1); err == nil {
		t.Fatal("expected error for node -1")
	}

	// api-server 与 sync-server 使用不同节点号，同一毫秒内也不会撞 id
	if err := Init(1); err != nil {
		t.Fatalf("init node 1: %v", err)
	}
	other, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("new node 2: %v", err)
	}
	seen := make(map[int64]struct{}, 4000)
	for i := 0; i < 2000; i++ {
		a, b := GenID(), other.Generate().Int64()
		if _, ok := seen[a]; ok {
			t.Fatalf("duplicate id %d", a)
		}
		seen[a] = struct{}{}
		if _, ok := seen[b]; ok {
			t.Fatalf("duplicate id %d", b)
		}
		seen[b] = struct{}{}
	}
}
