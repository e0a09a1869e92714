package entities

// WorkflowState is a stage of the submission/purchase/listing workflows.
type WorkflowState string

const (
	WorkflowIdle                 WorkflowState = "idle"
	WorkflowValidating           WorkflowState = "validating"
	WorkflowBlockchainPending    WorkflowState = "blockchain_pending"
	WorkflowBlockchainConfirming WorkflowState = "blockchain_confirming"
	WorkflowDatabaseSaving       WorkflowState = "database_saving"
	WorkflowComplete             WorkflowState = "complete"
	WorkflowError                WorkflowState = "error"
)

// SubmissionInput represents a validated prompt submission form
type SubmissionInput struct {
	Image    string  `json:"image"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// SubmissionResult reports the outcome of a submission workflow run
type SubmissionResult struct {
	State  WorkflowState   `json:"state"`
	Trace  []WorkflowState `json:"trace"`
	TxHash string          `json:"txHash,omitempty"`
	Prompt *Prompt         `json:"prompt,omitempty"`
}

// PurchaseInput represents a purchase request
type PurchaseInput struct {
	PromptTokenID int64 `json:"promptTokenId"`
}

// PurchaseResult reports the outcome of a purchase workflow run
type PurchaseResult struct {
	State     WorkflowState `json:"state"`
	TxHash    string        `json:"txHash,omitempty"`
	ValueWei  string        `json:"valueWei,omitempty"`
	Refreshed []*Prompt     `json:"refreshed,omitempty"`
}

// ListingInput represents a list-for-sale request
type ListingInput struct {
	PromptTokenID int64   `json:"promptTokenId"`
	Price         float64 `json:"price"`
}

// ListingResult reports the outcome of a listing workflow run
type ListingResult struct {
	State     WorkflowState `json:"state"`
	TxHash    string        `json:"txHash,omitempty"`
	ValueWei  string        `json:"priceWei,omitempty"`
	Refreshed []*Prompt     `json:"refreshed,omitempty"`
}

// ButtonStateInput is the projection input for the buy button
type ButtonStateInput struct {
	Connected    bool   `form:"connected"`
	BuyerAddress string `form:"buyerAddress"`
	OwnerAddress string `form:"ownerAddress"`
	Pending      bool   `form:"pending"`
	Confirming   bool   `form:"confirming"`
}

// ButtonState is the derived presentational state of the buy button.
// Precedence: not-connected > is-owner > in-flight > default.
type ButtonState struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Variant  string `json:"variant"`
}
