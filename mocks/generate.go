package mocks

//go:generate mockgen -destination=./mock_store.go -package=mocks github.com/rxtech-lab/trade-journal/internal/store Store
