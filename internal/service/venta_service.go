package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autopartes/internal/dto"
	"autopartes/internal/model"
	"autopartes/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const historialLimiteDefecto = 50

type VentaService interface {
	// RegistrarVenta runs the atomic sale: validate, persist the sale row,
	// decrement stock — all or nothing. Business-rule failures come back as
	// the result's Estado; only infrastructure failures return an error.
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.ResultadoVenta, error)

	ObtenerHistorial(ctx context.Context, limite int) ([]dto.VentaHistorial, error)
}

type ventaService struct {
	repo repository.VentaRepository
}

func NewVentaService(repo repository.VentaRepository) VentaService {
	return &ventaService{repo: repo}
}

// errVentaAbortada forces the rollback of a transaction whose outcome is a
// normal negative result (product missing, stock short). It never leaves
// RegistrarVenta.
var errVentaAbortada = errors.New("venta abortada")

// RegistrarVenta — one transaction, four steps:
//  1. re-read the product by code INSIDE the transaction (a pre-flight read
//     would race a concurrent sale of the same product),
//  2. check stock,
//  3. insert the sale with the caller's price snapshot and a server-side
//     timestamp,
//  4. decrement stock.
//
// The operator FK fires on the insert; an integrity violation there can only
// be the operator reference, because the product was just re-read in step 1.
func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.ResultadoVenta, error) {
	if req.Cantidad <= 0 {
		return &dto.ResultadoVenta{
			Estado:  dto.CantidadInvalida,
			Mensaje: "La cantidad debe ser mayor a 0.",
		}, nil
	}

	h, err := s.repo.Proveedor().Acquire()
	if err != nil {
		return nil, err
	}
	defer s.repo.Proveedor().Release(h)

	resultado := &dto.ResultadoVenta{}

	txErr := h.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		producto, err := s.repo.ProductoParaVentaTx(tx, req.CodigoProducto)
		if err != nil {
			return err
		}
		if producto == nil {
			resultado.Estado = dto.ProductoNoEncontrado
			resultado.Mensaje = fmt.Sprintf("El producto %q no existe.", req.CodigoProducto)
			return errVentaAbortada
		}
		if producto.Stock < req.Cantidad {
			resultado.Estado = dto.StockInsuficiente
			resultado.Mensaje = fmt.Sprintf("Stock insuficiente. Disponible: %d.", producto.Stock)
			return errVentaAbortada
		}

		total := req.PrecioUnitario.Mul(decimal.NewFromInt(int64(req.Cantidad)))

		venta := &model.Venta{
			IDProducto:     &producto.ID,
			Cantidad:       req.Cantidad,
			PrecioUnitario: req.PrecioUnitario,
			Total:          total,
			VendidoPor:     req.VendidoPor,
			FechaVenta:     time.Now(),
		}
		if err := s.repo.CrearTx(tx, venta); err != nil {
			return err
		}
		if err := s.repo.DescontarStockTx(tx, producto.ID, req.Cantidad); err != nil {
			return err
		}

		resultado.Estado = dto.VentaRegistrada
		resultado.Mensaje = "Venta registrada correctamente."
		resultado.VentaID = venta.ID
		resultado.Total = total
		resultado.NuevoStock = producto.Stock - req.Cantidad
		return nil
	})

	switch {
	case txErr == nil:
		log.Info().
			Int64("venta_id", resultado.VentaID).
			Str("codigo", req.CodigoProducto).
			Int("cantidad", req.Cantidad).
			Int64("vendido_por", req.VendidoPor).
			Msg("venta registrada")
		return resultado, nil

	case errors.Is(txErr, errVentaAbortada):
		return resultado, nil

	case errors.Is(txErr, gorm.ErrForeignKeyViolated):
		log.Warn().
			Err(txErr).
			Str("codigo", req.CodigoProducto).
			Int64("vendido_por", req.VendidoPor).
			Msg("venta rechazada por referencia de usuario")
		return &dto.ResultadoVenta{
			Estado:  dto.UsuarioInvalido,
			Mensaje: fmt.Sprintf("El usuario (ID %d) no existe.", req.VendidoPor),
		}, nil

	default:
		log.Error().
			Err(txErr).
			Str("codigo", req.CodigoProducto).
			Int64("vendido_por", req.VendidoPor).
			Msg("error inesperado registrando venta")
		return nil, fmt.Errorf("registrar venta de %q: %w", req.CodigoProducto, txErr)
	}
}

func (s *ventaService) ObtenerHistorial(ctx context.Context, limite int) ([]dto.VentaHistorial, error) {
	if limite <= 0 {
		limite = historialLimiteDefecto
	}
	return s.repo.ObtenerHistorial(ctx, limite)
}
