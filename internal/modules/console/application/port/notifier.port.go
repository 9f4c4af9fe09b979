package port

import "impactAdminWs/internal/modules/console/domain"

// Notifier publishes toasts. It must tolerate having no renderer attached.
type Notifier interface {
	Emit(message string, variant domain.ToastVariant)
}
