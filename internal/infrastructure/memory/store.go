// Package memory implementa los repositorios y el TxRunner sobre un almacén en memoria.
// Lo usan los tests y STORE_DRIVER=memory en desarrollo.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

var _ stock.TxRunner = (*Store)(nil)

type state struct {
	products    map[string]entity.Product
	launches    map[string]entity.Launch
	launchItems map[string][]entity.LaunchItem
	baskets     map[string]entity.Basket
	basketItems map[string][]entity.BasketItem
	exits       map[string]entity.Exit
	exitItems   map[string][]entity.ExitItem
	movements   []entity.StockMovement
}

func newState() *state {
	return &state{
		products:    make(map[string]entity.Product),
		launches:    make(map[string]entity.Launch),
		launchItems: make(map[string][]entity.LaunchItem),
		baskets:     make(map[string]entity.Basket),
		basketItems: make(map[string][]entity.BasketItem),
		exits:       make(map[string]entity.Exit),
		exitItems:   make(map[string][]entity.ExitItem),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.launches {
		c.launches[k] = v
	}
	for k, v := range s.launchItems {
		c.launchItems[k] = append([]entity.LaunchItem(nil), v...)
	}
	for k, v := range s.baskets {
		c.baskets[k] = v
	}
	for k, v := range s.basketItems {
		c.basketItems[k] = append([]entity.BasketItem(nil), v...)
	}
	for k, v := range s.exits {
		c.exits[k] = v
	}
	for k, v := range s.exitItems {
		c.exitItems[k] = append([]entity.ExitItem(nil), v...)
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

// Store almacén en memoria. Las transacciones se serializan con un único mutex;
// un error dentro de Run restaura la foto tomada al inicio.
type Store struct {
	mu     sync.Mutex
	st     *state
	failOn map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), failOn: make(map[string]error)}
}

// FailOn hace que la operación op (ej. "launch.create_items") falle con err envuelto en DependencyError.
// Pasar err nil elimina la falla.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failOn, op)
		return
	}
	s.failOn[op] = err
}

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Run ejecuta fn con repositorios atados a la "transacción" en memoria.
func (s *Store) Run(ctx context.Context, fn func(r stock.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repos devuelve repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Repos() stock.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) stock.Repos {
	return stock.NewRepos(&StockRepo{s: s, tx: inTx}, stock.Repos{
		Products:  &ProductRepo{s: s, tx: inTx},
		Launches:  &LaunchRepo{s: s, tx: inTx},
		Baskets:   &BasketRepo{s: s, tx: inTx},
		Exits:     &ExitRepo{s: s, tx: inTx},
		Movements: &MovementRepo{s: s, tx: inTx},
	})
}

// do ejecuta fn sobre el estado. Dentro de Run el mutex ya está tomado.
func (s *Store) do(inTx bool, op string, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if err, ok := s.failOn[op]; ok {
		return domain.NewDependencyError(op, err)
	}
	return fn(s.st)
}

func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		return n, n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

func errDuplicate(id string) error {
	return fmt.Errorf("id duplicado: %s", id)
}

func errMissingParent(table, id string) error {
	return fmt.Errorf("%s %s no existe", table, id)
}
