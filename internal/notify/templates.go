package notify

import (
	"fmt"

	"github.com/lpkia/helpdesk-service/internal/domain"
)

// TicketCreatedInfo carries the fields rendered into the creation push.
type TicketCreatedInfo struct {
	TicketNumber string
	StudentName  string
	Category     domain.Department
	Subject      string
}

// MessageInfo carries the fields rendered into a new-message push.
type MessageInfo struct {
	TicketNumber string
	SenderName   string
	SenderType   domain.SenderType
	Message      string
}

// TicketCreatedMessage renders the confirmation sent to the student after
// their ticket is filed.
func (c *WhatsAppClient) TicketCreatedMessage(info TicketCreatedInfo) string {
	return fmt.Sprintf(`🎫 *Tiket Support LPKIA Berhasil Dibuat*

Halo %s,

Tiket support Anda telah berhasil dibuat dengan detail:

📋 *Nomor Tiket:* %s
🏢 *Kategori:* %s
📝 *Subjek:* %s

Simpan nomor tiket ini untuk melacak status tiket Anda.

Tim %s akan segera menangani masalah Anda. Anda akan menerima notifikasi WhatsApp saat ada update.

Terima kasih,
*LPKIA Helpdesk Support System*`,
		info.StudentName, info.TicketNumber, info.Category, info.Subject, info.Category)
}

// StudentReplyMessage renders the push sent to the student when a support
// team replies on their ticket.
func (c *WhatsAppClient) StudentReplyMessage(info MessageInfo) string {
	return fmt.Sprintf(`💬 *Balasan Baru dari Tim %s*

Tiket: %s
Dari: %s (Tim %s)

%s

---
Balas pesan ini melalui website:
%s/%s

*LPKIA Helpdesk Support System*`,
		info.SenderType, info.TicketNumber, info.SenderName, info.SenderType,
		info.Message, c.cfg.TrackingURL, info.TicketNumber)
}

// SupportAlertMessage renders the push sent to a department's contact
// number when the student writes.
func (c *WhatsAppClient) SupportAlertMessage(info MessageInfo) string {
	return fmt.Sprintf(`📨 *Pesan Baru dari Mahasiswa*

Tiket: %s
Dari: %s

%s

---
Balas melalui dashboard admin:
%s/%s

*LPKIA Helpdesk Support System*`,
		info.TicketNumber, info.SenderName, info.Message, c.cfg.TrackingURL, info.TicketNumber)
}
