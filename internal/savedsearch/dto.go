package savedsearch

type CreateSavedSearchRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Criteria  Criteria `json:"criteria"`
	Frequency string   `json:"frequency" validate:"required,oneof=daily weekly"`
}
