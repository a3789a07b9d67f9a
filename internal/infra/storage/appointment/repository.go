package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/pkg/dbmetrics"
	"github.com/KaayaanAi/salon-receptionist/pkg/psqlbuilder"
)

// uniqueViolationCode код ошибки Postgres при нарушении уникального индекса
const uniqueViolationCode = "23505"

// appointmentColumns полный список колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"booking_ref",
	"tenant_id",
	"customer_name",
	"customer_phone",
	"service_id",
	"service_name",
	"duration_minutes",
	"service_price",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новую запись. Если в контексте передана активная
// транзакция, использует её.
// Уникальный индекс (tenant_id, booking_ref) превращает гонку генерации
// идентификаторов в ErrDuplicateBookingRef, который вызывающая сторона
// обрабатывает повторной генерацией.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"booking_ref",
			"tenant_id",
			"customer_name",
			"customer_phone",
			"service_id",
			"service_name",
			"duration_minutes",
			"service_price",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			appt.BookingRef,
			appt.TenantID,
			appt.CustomerName,
			appt.CustomerPhone,
			appt.ServiceID,
			appt.ServiceName,
			appt.DurationMinutes,
			appt.ServicePrice,
			appt.Date,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: ref=%s", ErrDuplicateBookingRef, appt.BookingRef)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByRef получает запись по booking ref в рамках тенанта
func (r *Repository) GetByRef(ctx context.Context, tenantID, bookingRef string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID, "booking_ref": bookingRef}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByTenantWithFilter получает записи тенанта с фильтрацией по дате и статусу.
//
// Для выборки одного дня сортировка по времени начала (ASC), иначе по дате
// и времени (DESC - сначала новые).
//
// Внутри транзакции выборка одного дня блокирует строки (FOR UPDATE):
// это снапшот, на котором создание записи проверяет занятость слота.
func (r *Repository) GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetRefsByDayPrefix возвращает все booking ref тенанта с указанным префиксом
// дня. Используется генератором идентификаторов для вычисления следующего
// номера в последовательности.
func (r *Repository) GetRefsByDayPrefix(ctx context.Context, tenantID, dayPrefix string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_ref").
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Like{"booking_ref": dayPrefix + "-%"}).
		OrderBy("booking_ref ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRefsByDayPrefix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRefsByDayPrefix - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	refs := make([]string, 0)
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("%w: GetRefsByDayPrefix - scan booking_ref: %v", ErrScanRow, err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRefsByDayPrefix - rows error: %v", ErrScanRow, err)
	}

	return refs, nil
}

// GetByPhoneSince получает записи клиента по каноническому телефону начиная
// с указанной даты, отсортированные по дате и времени по убыванию.
func (r *Repository) GetByPhoneSince(ctx context.Context, tenantID, phone string, since time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID, "customer_phone": phone}).
		Where(squirrel.GtOrEq{"booking_date": since}).
		OrderBy("booking_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhoneSince - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhoneSince - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateFields частичное обновление записи.
// nil поля не трогаются. EndTime обязан приходить пересчитанным,
// если меняются StartTime, Date или услуга.
type UpdateFields struct {
	Date            *time.Time
	StartTime       *string
	EndTime         *string
	ServiceID       *string
	ServiceName     *string
	DurationMinutes *int
	ServicePrice    *float64
	Notes           *string
	Status          *domain.AppointmentStatus
}

// Update применяет частичное обновление к записи тенанта
func (r *Repository) Update(ctx context.Context, tenantID, bookingRef string, fields UpdateFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "booking_ref": bookingRef})

	if fields.Date != nil {
		updateBuilder = updateBuilder.Set("booking_date", *fields.Date)
	}
	if fields.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *fields.StartTime)
	}
	if fields.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *fields.EndTime)
	}
	if fields.ServiceID != nil {
		updateBuilder = updateBuilder.Set("service_id", *fields.ServiceID)
	}
	if fields.ServiceName != nil {
		updateBuilder = updateBuilder.Set("service_name", *fields.ServiceName)
	}
	if fields.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *fields.DurationMinutes)
	}
	if fields.ServicePrice != nil {
		updateBuilder = updateBuilder.Set("service_price", *fields.ServicePrice)
	}
	if fields.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *fields.Notes)
	}
	if fields.Status != nil {
		updateBuilder = updateBuilder.Set("status", *fields.Status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel переводит запись в статус cancelled с причиной и меткой времени.
// Обновляются только еще активные записи - повторная отмена не затирает
// исходные поля отмены.
func (r *Repository) Cancel(ctx context.Context, tenantID, bookingRef string, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "booking_ref": bookingRef}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointment сканирует одну строку результата
func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.BookingRef,
		&appt.TenantID,
		&appt.CustomerName,
		&appt.CustomerPhone,
		&appt.ServiceID,
		&appt.ServiceName,
		&appt.DurationMinutes,
		&appt.ServicePrice,
		&appt.Date,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.Notes,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.BookingRef,
			&appt.TenantID,
			&appt.CustomerName,
			&appt.CustomerPhone,
			&appt.ServiceID,
			&appt.ServiceName,
			&appt.DurationMinutes,
			&appt.ServicePrice,
			&appt.Date,
			&appt.StartTime,
			&appt.EndTime,
			&appt.Status,
			&appt.Notes,
			&appt.CancellationReason,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}
