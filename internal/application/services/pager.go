package services

import (
	"github.com/bluehands/branchfinder/internal/domain/entities"
)

// TotalPages returns max(1, ceil(totalItems/pageSize))
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		pageSize = entities.DefaultPageSize
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages]
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the requested page of items, clamping out of range requests
func Paginate(items []entities.AnnotatedBranch, pageSize, requested int) entities.Page {
	if pageSize <= 0 {
		pageSize = entities.DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)
	page := ClampPage(requested, total)

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	slice := make([]entities.AnnotatedBranch, 0, end-start)
	if start < end {
		slice = append(slice, items[start:end]...)
	}

	return entities.Page{
		Items:      slice,
		PageIndex:  page,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: total,
	}
}

// ComputeWindow returns the block of page numbers containing current
func ComputeWindow(current, totalPages, blockSize int) entities.PaginationWindow {
	if blockSize <= 0 {
		blockSize = entities.DefaultBlockSize
	}
	if totalPages < 1 {
		totalPages = 1
	}
	current = ClampPage(current, totalPages)

	block := (current - 1) / blockSize
	start := block*blockSize + 1
	end := start + blockSize - 1
	if end > totalPages {
		end = totalPages
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	w := entities.PaginationWindow{
		Current:    current,
		Start:      start,
		End:        end,
		TotalPages: totalPages,
		Pages:      pages,
	}
	if start > 1 {
		w.HasPrevBlock = true
		w.PrevBlockPage = start - 1
	}
	if end < totalPages {
		w.HasNextBlock = true
		w.NextBlockPage = end + 1
	}
	return w
}

// Navigate applies a page selector action to current. The result is always
// within [1, totalPages].
func Navigate(current, totalPages, blockSize int, nav entities.Navigation) int {
	w := ComputeWindow(current, totalPages, blockSize)

	switch nav.Kind {
	case entities.NavigateToPage:
		return ClampPage(nav.Page, totalPages)
	case entities.NavigatePrevBlock:
		return ClampPage(w.Start-1, totalPages)
	case entities.NavigateNextBlock:
		return ClampPage(w.End+1, totalPages)
	default:
		return w.Current
	}
}
