package model

// Model identifiers with known pricing
const (
	ModelOpus45   ModelID = "claude-opus-4-5-20251101"
	ModelOpus41   ModelID = "claude-opus-4-1-20250805"
	ModelOpus4    ModelID = "claude-opus-4-20250514"
	ModelOpus3    ModelID = "claude-3-opus-20240229"
	ModelSonnet45 ModelID = "claude-sonnet-4-5-20250929"
	ModelSonnet4  ModelID = "claude-sonnet-4-20250514"
	ModelSonnet37 ModelID = "claude-3-7-sonnet-20250219"
	ModelSonnet35 ModelID = "claude-3-5-sonnet-20241022"
	ModelHaiku45  ModelID = "claude-haiku-4-5-20251001"
	ModelHaiku35  ModelID = "claude-3-5-haiku-20241022"
	ModelHaiku3   ModelID = "claude-3-haiku-20240307"
)

