package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/storage"
)

// PlanNotifier fetches a stored plan artifact and dispatches it to the
// client as an email attachment.
//
// Delivery is deliberately decoupled from generation: it re-fetches the
// bytes from the store rather than holding them in memory, so sending works
// for any plan whose pointer exists, however long ago it was generated.
type PlanNotifier struct {
	store  storage.ArtifactStore
	sender Sender
	logger *slog.Logger
}

func NewPlanNotifier(store storage.ArtifactStore, sender Sender, logger *slog.Logger) *PlanNotifier {
	return &PlanNotifier{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// Deliver fetches the artifact behind pointerURL and emails it to recipient.
// A fetch failure surfaces as a storage error so the caller can distinguish
// "store unreachable" from "no artifact exists"; a send failure surfaces as
// a delivery error. At-most-once: no retries on either.
func (n *PlanNotifier) Deliver(ctx context.Context, pointerURL, recipient, clientName string, kind model.PlanKind) error {
	pdf, err := n.store.Fetch(ctx, pointerURL)
	if err != nil {
		return apperror.StorageFailed("fetch", err)
	}

	msg := Message{
		To:      recipient,
		Subject: fmt.Sprintf("Your %s from your coach", kind.Title()),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour updated %s is attached to this email.\n\nGood luck!\n",
			clientName, kind.Title()),
		Attachment: &Attachment{
			Filename:    AttachmentFilename(clientName, kind),
			ContentType: "application/pdf",
			Content:     pdf,
		},
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		return apperror.DeliveryFailed(err)
	}

	n.logger.Info("plan delivered",
		slog.String("kind", string(kind)),
		slog.String("recipient", recipient),
	)
	return nil
}

// AttachmentFilename derives the attachment name from the client's display
// name, e.g. "Training Plan - Jane Doe.pdf".
func AttachmentFilename(clientName string, kind model.PlanKind) string {
	return fmt.Sprintf("%s - %s.pdf", kind.Title(), clientName)
}
