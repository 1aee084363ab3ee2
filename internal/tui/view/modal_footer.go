package view

// EventFormFooter renders the footer for the appointment form modal.
func EventFormFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[Enter] Save", "[Tab] Next", "[Esc] Cancel")
}

// ConfirmDeleteFooter renders the footer for the confirm delete modal.
func ConfirmDeleteFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y/Enter] Delete", "[n/Esc] Keep")
}

// TemplatesFooter renders the footer for the template list modal.
func TemplatesFooter(empty bool, styles ModalStyles) string {
	if empty {
		return RenderModalButtonsCompact(styles, "[a] New", "[Esc] Close")
	}
	return RenderModalButtonsCompact(styles, "[a] New", "[e] Edit", "[d] Delete", "[Esc] Close")
}

// WeekSummaryFooter renders the footer for the week summary modal.
func WeekSummaryFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[y] Copy", "[Esc] Close")
}

// InitFooter renders the footer for the init modal.
func InitFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Allow", "[Esc] Quit")
}
