package training

import "time"

// Signature — подпись роли на подмодуле. После создания не редактируется,
// только удаляется, и только тем, кто ее поставил. Уникальный индекс
// (progress_id, role) не допускает вторую подпись за ту же роль даже при
// одновременных запросах.
type Signature struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProgressID uint      `gorm:"not null;uniqueIndex:idx_signatures_progress_role" json:"progress_id"`
	Role       Role      `gorm:"size:20;not null;uniqueIndex:idx_signatures_progress_role" json:"role"`
	SignerID   uint      `gorm:"not null;index" json:"signer_id"`
	ExportRef  string    `gorm:"size:36;not null" json:"export_ref"` // Внешний идентификатор для ссылок вне БД
	CreatedAt  time.Time `json:"created_at"`
}
