//go:generate mockgen -source=../kv_store.go          -destination=./mock_kv_store.go          -package=mocks
//go:generate mockgen -source=../state_store.go       -destination=./mock_state_store.go       -package=mocks
//go:generate mockgen -source=../data_source.go       -destination=./mock_data_source.go       -package=mocks
//go:generate mockgen -source=../notifier.go          -destination=./mock_notifier.go          -package=mocks
//go:generate mockgen -source=../handoff_publisher.go -destination=./mock_handoff_publisher.go -package=mocks
//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks

package mocks
