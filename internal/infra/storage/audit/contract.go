package audit

import "github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
