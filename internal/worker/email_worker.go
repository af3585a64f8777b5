package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"pastelpos/internal/infra"
	"pastelpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailWorker mails the receipt PDF to customers that left an address
// with their purchase. Runs entirely off the request path — a mail outage
// never blocks or fails a sale.
type EmailWorker struct {
	ventaRepo   repository.VentaRepository
	mailer      *infra.Mailer
	storagePath string
	negocio     string
}

func NewEmailWorker(ventaRepo repository.VentaRepository, mailer *infra.Mailer, storagePath, negocio string) *EmailWorker {
	return &EmailWorker{ventaRepo: ventaRepo, mailer: mailer, storagePath: storagePath, negocio: negocio}
}

type emailPayload struct {
	VentaID      string `json:"venta_id"`
	ClienteEmail string `json:"cliente_email"`
}

func (w *EmailWorker) Handle(ctx context.Context, raw json.RawMessage) error {
	var p emailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("email worker: bad payload: %w", err)
	}
	id, err := uuid.Parse(p.VentaID)
	if err != nil {
		return fmt.Errorf("email worker: bad venta_id %q: %w", p.VentaID, err)
	}

	venta, err := w.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("email worker: venta %s: %w", p.VentaID, err)
	}

	pdfPath, err := infra.GenerateReciboPDF(venta, w.negocio, w.storagePath)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s — Recibo de compra", w.negocio)
	body := fmt.Sprintf("Gracias por su compra, %s.\nAdjuntamos el recibo de su pedido.", venta.ClienteNombre)
	if err := w.mailer.SendRecibo(p.ClienteEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("email worker: send: %w", err)
	}

	log.Info().Str("venta_id", p.VentaID).Str("to", p.ClienteEmail).Msg("recibo enviado")
	return nil
}
