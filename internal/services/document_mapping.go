package services

import (
	"erp-system/internal/dto"
	"erp-system/internal/entities"
	"erp-system/pkg/utils"

	"github.com/aarondl/null/v8"
)

func documentToDTO(doc *entities.Document) dto.DocumentDTO {
	result := dto.DocumentDTO{
		ID:                doc.ID,
		DocumentType:      doc.DocumentType.String(),
		Number:            doc.Number,
		Status:            doc.Status.String(),
		CustomerName:      doc.CustomerName,
		CustomerEmail:     null.StringFromPtr(doc.CustomerEmail),
		Currency:          doc.Currency,
		Notes:             null.StringFromPtr(doc.Notes),
		IssueDate:         utils.FormatDate(doc.IssueDate),
		Subtotal:          doc.Subtotal,
		TaxTotal:          doc.TaxTotal,
		GrandTotal:        doc.GrandTotal,
		CreatedBy:         doc.CreatedBy,
		RelatedDocumentID: null.Uint64FromPtr(doc.RelatedDocumentID),
	}
	if doc.DueDate != nil {
		result.DueDate = null.StringFrom(utils.FormatDate(*doc.DueDate))
	}
	if doc.PaidAt != nil {
		result.PaidAt = null.StringFrom(utils.FormatDateTime(*doc.PaidAt))
	}
	if doc.CreatedAt != nil {
		result.CreatedAt = utils.FormatDateTime(*doc.CreatedAt)
	}
	if doc.UpdatedAt != nil {
		result.UpdatedAt = utils.FormatDateTime(*doc.UpdatedAt)
	}

	if len(doc.Lines) > 0 {
		result.Lines = make([]dto.DocumentLineDTO, 0, len(doc.Lines))
		for _, l := range doc.Lines {
			result.Lines = append(result.Lines, dto.DocumentLineDTO{
				ID:          l.ID,
				LineNo:      l.LineNo,
				ItemCode:    null.StringFromPtr(l.ItemCode),
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				TaxRate:     l.TaxRate,
				LineTotal:   l.LineTotal,
				TaxAmount:   l.TaxAmount,
			})
		}
	}
	return result
}

func historyToDTO(h *entities.DocumentHistory) dto.DocumentHistoryDTO {
	result := dto.DocumentHistoryDTO{
		ID:        h.ID,
		EventType: h.EventType,
		OldValue:  null.NewString(h.OldValue.String, h.OldValue.Valid),
		NewValue:  null.NewString(h.NewValue.String, h.NewValue.Valid),
		Comment:   null.NewString(h.Comment.String, h.Comment.Valid),
		UserID:    h.UserID,
		UserFio:   null.NewString(h.UserFio.String, h.UserFio.Valid),
		CreatedAt: utils.FormatDateTime(h.CreatedAt),
	}
	if h.TxID != nil {
		result.TxID = null.StringFrom(h.TxID.String())
	}
	return result
}
