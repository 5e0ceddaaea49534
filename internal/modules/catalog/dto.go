package catalog

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=64"`
}
