package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Username: "alice", Role: domain.RoleSeller}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Username: "alice", Role: domain.RoleBuyer}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if _, err := repo.FindByUsername(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	stored := &domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleSeller}
	if err := repo.Create(ctx, stored); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.PasswordHash != "hash" || found.Role != domain.RoleSeller {
		t.Fatalf("unexpected user: %+v", found)
	}

	// The returned value is a copy; mutating it must not affect the store.
	found.Role = domain.RoleBuyer
	again, _ := repo.FindByUsername(ctx, "alice")
	if again.Role != domain.RoleSeller {
		t.Fatalf("repository state leaked through returned pointer")
	}
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, &domain.User{Username: "race", Role: domain.RoleBuyer}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", successes)
	}
}

func TestProductRepository_IDsMonotonicAcrossDeletions(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, "a", 1, "alice")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	second, _ := repo.Insert(ctx, "b", 2, "alice")

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("unexpected ids: %d, %d", first.ID, second.ID)
	}

	// Delete everything; the next id must still move forward.
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	third, _ := repo.Insert(ctx, "c", 3, "alice")
	if third.ID != 3 {
		t.Fatalf("id reused after deletion: got %d", third.ID)
	}
}

func TestProductRepository_ConcurrentInserts(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	ids := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := repo.Insert(ctx, fmt.Sprintf("p%d", i), float64(i), "alice")
			if err != nil {
				t.Errorf("insert failed: %v", err)
				return
			}
			ids <- p.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id assigned under concurrency: %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
}

func TestProductRepository_UpdateAndList(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	if _, err := repo.Update(ctx, 1, ports.ProductPatch{}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	created, _ := repo.Insert(ctx, "Widget", 9.99, "alice")

	name := "Gadget"
	updated, err := repo.Update(ctx, created.ID, ports.ProductPatch{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Gadget" || updated.Price != 9.99 {
		t.Fatalf("unexpected product after patch: %+v", updated)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Gadget" {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func TestProductRepository_ListOrderedByID(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Insert(ctx, fmt.Sprintf("p%d", i), 1, "alice"); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("listing not ordered by id: %+v", list)
		}
	}
}
