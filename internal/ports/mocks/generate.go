//go:generate mockgen -source=../cache.go         -destination=./mock_cache.go         -package=mocks
//go:generate mockgen -source=../locker.go        -destination=./mock_locker.go        -package=mocks
//go:generate mockgen -source=../tx_manager.go    -destination=./mock_tx_manager.go    -package=mocks
//go:generate mockgen -source=../repositories.go  -destination=./mock_repositories.go  -package=mocks
//go:generate mockgen -source=../collaborators.go -destination=./mock_collaborators.go -package=mocks
//go:generate mockgen -source=../services.go      -destination=./mock_services.go      -package=mocks
//go:generate mockgen -source=../logger.go        -destination=./mock_logger.go        -package=mocks

package mocks
