package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// TransferUseCase mueve cantidad de un producto entre dos bodegas de forma transaccional:
// valida todo antes de mutar, bloquea el producto y las líneas de stock, y registra el traslado.
type TransferUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	transferRepo  repository.TransferRepository
	log           *logger.Logger
	now           Clock
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	transferRepo repository.TransferRepository,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		transferRepo:  transferRepo,
		log:           log,
		now:           systemClock,
	}
}

// WithClock reemplaza la fuente de tiempo.
func (uc *TransferUseCase) WithClock(c Clock) *TransferUseCase {
	uc.now = c
	return uc
}

// maxQuantity mayor cantidad representable en una línea de stock.
var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// TransferInput entrada para SubmitTransfer.
type TransferInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
}

// SubmitTransfer valida en orden (ids, origen != destino, cantidad, producto, bodegas, línea
// origen, disponibilidad), descuenta el origen, suma (o crea) el destino y agrega el registro
// al log dentro de la misma transacción. Devuelve el traslado creado.
func (uc *TransferUseCase) SubmitTransfer(ctx context.Context, input TransferInput) (*entity.Transfer, error) {
	// Desde aquí todos los ids van en forma canónica: comparación, bloqueo y consultas.
	for _, f := range []struct {
		name string
		val  *string
	}{
		{"product_id", &input.ProductID},
		{"from_warehouse_id", &input.FromWarehouseID},
		{"to_warehouse_id", &input.ToWarehouseID},
	} {
		id, ok := entity.CanonicalID(*f.val)
		if !ok {
			return nil, domain.Validationf("%s inválido: %q", f.name, *f.val)
		}
		*f.val = id
	}
	if input.FromWarehouseID == input.ToWarehouseID {
		return nil, domain.Validationf("la bodega origen y destino deben ser distintas")
	}
	if !input.Quantity.IsPositive() || !input.Quantity.Equal(input.Quantity.Truncate(0)) {
		return nil, domain.Validationf("quantity debe ser un entero positivo: %s", input.Quantity)
	}
	if input.Quantity.GreaterThan(maxQuantity) {
		return nil, domain.Validationf("quantity fuera de rango: %s", input.Quantity)
	}
	qty := input.Quantity.IntPart()

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %s no encontrado", input.ProductID)
	}
	for _, id := range []string{input.FromWarehouseID, input.ToWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get warehouse: %w", err)
		}
		if wh == nil {
			return nil, domain.NotFoundf("bodega %s no encontrada", id)
		}
	}

	var created *entity.Transfer
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Locks.LockProduct(ctx, input.ProductID); err != nil {
			return err
		}
		// Orden fijo de bloqueo de filas (por id de bodega) para no generar deadlocks.
		first, second := input.FromWarehouseID, input.ToWarehouseID
		if second < first {
			first, second = second, first
		}
		lines := make(map[string]*entity.StockLine, 2)
		for _, wh := range []string{first, second} {
			line, err := repos.Stock.GetForUpdate(ctx, input.ProductID, wh)
			if err != nil {
				return err
			}
			lines[wh] = line
		}

		source := lines[input.FromWarehouseID]
		if source == nil {
			return domain.Integrityf("no existe línea de stock para producto %s en bodega %s",
				input.ProductID, input.FromWarehouseID)
		}
		if source.Quantity < qty {
			return domain.InsufficientStockf("stock insuficiente: disponible %d, solicitado %d",
				source.Quantity, qty)
		}

		now := uc.now()
		dest := lines[input.ToWarehouseID]
		if dest == nil {
			dest = &entity.StockLine{ProductID: input.ProductID, WarehouseID: input.ToWarehouseID}
		}
		if dest.Quantity > math.MaxInt64-qty {
			return domain.Conflictf("el destino %s no admite %d unidades más: disponible %d",
				input.ToWarehouseID, qty, dest.Quantity)
		}
		source.Quantity -= qty
		dest.Quantity += qty
		source.UpdatedAt = now
		dest.UpdatedAt = now

		// El ledger es el estado autoritativo: se escribe antes que el registro que lo narra.
		if err := repos.Stock.Upsert(ctx, source); err != nil {
			return err
		}
		if err := repos.Stock.Upsert(ctx, dest); err != nil {
			return err
		}

		seq, err := repos.Transfers.NextSequence(ctx)
		if err != nil {
			return err
		}
		t := &entity.Transfer{
			ID:              entity.TransferID(now, seq),
			Seq:             seq,
			ProductID:       input.ProductID,
			FromWarehouseID: input.FromWarehouseID,
			ToWarehouseID:   input.ToWarehouseID,
			Quantity:        qty,
			Status:          entity.TransferStatusCompleted,
			CreatedAt:       now,
		}
		if err := repos.Transfers.Create(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", input.ProductID).
			Str("from", input.FromWarehouseID).
			Str("to", input.ToWarehouseID).
			Int64("quantity", qty).
			Msg("traslado rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("transfer_id", created.ID).
		Str("product_id", created.ProductID).
		Str("from", created.FromWarehouseID).
		Str("to", created.ToWarehouseID).
		Int64("quantity", created.Quantity).
		Msg("traslado registrado")
	return created, nil
}

// ListTransfers lista el log de traslados del más reciente al más antiguo.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	if filter.ProductID != "" {
		id, ok := entity.CanonicalID(filter.ProductID)
		if !ok {
			return nil, domain.Validationf("product_id inválido: %q", filter.ProductID)
		}
		filter.ProductID = id
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.transferRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return list, nil
}
