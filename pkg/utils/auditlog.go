package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/linskybing/formify-go/internal/domain/audit"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"gorm.io/datatypes"
)

// FormChange is one lifecycle step of a form as it lands in the audit log.
type FormChange struct {
	Action  string
	FormID  string
	Before  any
	After   any
	Message string
}

// LogFormAudit records change as made by p. A snapshot that cannot be encoded
// is left out and the entry is still written.
func LogFormAudit(p session.Principal, change FormChange, repo repository.AuditRepo) error {
	msg := change.Message
	if msg == "" {
		msg = fmt.Sprintf("%s form %s", change.Action, change.FormID)
	}

	entry := &audit.AuditLog{
		UserID:       p.UserID,
		Action:       change.Action,
		ResourceType: audit.ResourceForm,
		ResourceID:   change.FormID,
		OldData:      formSnapshot(change.FormID, change.Before),
		NewData:      formSnapshot(change.FormID, change.After),
		Description:  msg,
	}
	return repo.CreateAuditLog(entry)
}

func formSnapshot(formID string, v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Audit] form %s: marshal snapshot: %v", formID, err)
		return nil
	}
	return data
}
