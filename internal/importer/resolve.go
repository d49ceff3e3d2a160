package importer

// rowAction is the outcome of conflict resolution for one row.
type rowAction int

const (
	actionCreate rowAction = iota
	actionUpdate
	actionReject
)

// resolveConflict is the entire business rule of mode dispatch: given the
// import mode and whether the row's SKU existed before the import, decide
// create, update, or reject. Pure, no side effects.
func resolveConflict(mode Mode, skuKnown bool) (rowAction, string) {
	switch mode {
	case ModeCreate:
		if skuKnown {
			return actionReject, "SKU already exists (use update or upsert mode)"
		}
		return actionCreate, ""
	case ModeUpdate:
		if !skuKnown {
			return actionReject, "SKU not found (use create or upsert mode)"
		}
		return actionUpdate, ""
	case ModeUpsert:
		if skuKnown {
			return actionUpdate, ""
		}
		return actionCreate, ""
	default:
		return actionReject, "unknown import mode"
	}
}
