package postgres

var (
	QuantitiesPatch             = quantitiesPatch
	LegacyQuantityKeys          = legacyQuantityKeys
	IsForeignKeyViolation       = isForeignKeyViolation
	IsInvalidTextRepresentation = isInvalidTextRepresentation
)
