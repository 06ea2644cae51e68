package memory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/memory"
)

func seedMedicine(t *testing.T, repo *memory.MedicineRepo, stock int) *entity.Medicine {
	t.Helper()
	m, err := entity.NewMedicine("Ibuprofeno 400mg", "analgésicos", stock,
		decimal.RequireFromString("12.50"), time.Now().AddDate(1, 0, 0), "prov-1", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(m))
	return m
}

func TestMedicineRepo_ReduceStockCondicional(t *testing.T) {
	repo := memory.NewMedicineRepository(memory.NewStore())
	m := seedMedicine(t, repo, 5)

	newStock, err := repo.ReduceStock(m.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, newStock)

	// Pedir más de lo disponible falla sin recorte parcial.
	_, err = repo.ReduceStock(m.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)

	_, err = repo.ReduceStock("no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMedicineRepo_UpdateNoTocaStock(t *testing.T) {
	// El stock solo se muta por ReduceStock/AddStock/SetStock: un Update de
	// datos descriptivos no debe pisar un stock concurrentemente comprometido.
	repo := memory.NewMedicineRepository(memory.NewStore())
	m := seedMedicine(t, repo, 10)

	stale, err := repo.GetByID(m.ID)
	require.NoError(t, err)

	_, err = repo.ReduceStock(m.ID, 4)
	require.NoError(t, err)

	stale.Name = "Ibuprofeno 600mg"
	stale.Stock = 10 // copia desactualizada
	require.NoError(t, repo.Update(stale))

	stored, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofeno 600mg", stored.Name)
	assert.Equal(t, 6, stored.Stock, "el Update conserva el stock persistido")
}

func TestMedicineRepo_GetByIDDevuelveCopia(t *testing.T) {
	repo := memory.NewMedicineRepository(memory.NewStore())
	m := seedMedicine(t, repo, 10)

	copy1, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	copy1.Stock = 999

	copy2, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, copy2.Stock, "mutar la copia no afecta lo almacenado")
}

func TestMedicineRepo_CreateDuplicado(t *testing.T) {
	repo := memory.NewMedicineRepository(memory.NewStore())
	m := seedMedicine(t, repo, 10)
	assert.ErrorIs(t, repo.Create(m), domain.ErrDuplicate)
}
