package drain_outbox

import (
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Settings параметры обработки очереди
type Settings struct {
	BatchSize   int           // записей за один проход
	MaxAttempts int           // после стольких попыток запись становится failed
	StaleAfter  time.Duration // processing старше этого возвращается в очередь
}

// Request модель запроса на обработку очереди
type Request struct {
	BatchSize int // 0 - из настроек
}

// Response итоги прохода
type Response struct {
	Sent      int                  // доставлено
	Failed    int                  // неудачных отправок, включая отложенные повторы
	Dead      int                  // из них исчерпали попытки
	Skipped   int                  // запись забрал другой обработчик
	Reclaimed domain.ReclaimResult // результат возврата зависших записей
}
