package models

// Paging defaults used by the list endpoints
const (
	DefaultPageNum  = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// Page is one page of a filtered listing
type Page[T any] struct {
	PageNum   int   `json:"pageNum"`
	PageSize  int   `json:"pageSize"`
	TotalPage int64 `json:"totalPage"`
	Total     int64 `json:"total"`
	List      []T   `json:"list"`
}

// NewPage builds a page and computes the total page count
func NewPage[T any](pageNum, pageSize int, total int64, list []T) *Page[T] {
	if list == nil {
		list = []T{}
	}

	var totalPage int64
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}

	return &Page[T]{
		PageNum:   pageNum,
		PageSize:  pageSize,
		TotalPage: totalPage,
		Total:     total,
		List:      list,
	}
}

// NormalizePaging clamps paging input to usable values
func NormalizePaging(pageNum, pageSize int) (int, int) {
	if pageNum < 1 {
		pageNum = DefaultPageNum
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNum, pageSize
}

// Offset returns the row offset of the first record on a page
func Offset(pageNum, pageSize int) int {
	return (pageNum - 1) * pageSize
}

// CommonResult is the JSON envelope returned by the API
type CommonResult struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
