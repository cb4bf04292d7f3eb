package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/ports"
)

const collectionEmployees = "employees"

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

// Insert adds a new employee document.
func (r *EmployeeRepository) Insert(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmployeeExists
		}
		return mapStoreErr("insert employee", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Employee
	err := r.col.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, mapStoreErr("find employee", err)
	}
	return &e, nil
}

// Update applies a partial $set merge onto the document.
func (r *EmployeeRepository) Update(ctx context.Context, employeeID string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": fields})
	if err != nil {
		return mapStoreErr("update employee", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return mapStoreErr("delete employee", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// List runs the filter, sort and pagination window at the store level and
// counts the full match set separately, so memory stays bounded no matter
// how large the collection is.
func (r *EmployeeRepository) List(ctx context.Context, q ports.EmployeeQuery) ([]*domain.Employee, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildEmployeeFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapStoreErr("count employees", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	if q.Windowed() {
		opts.SetSkip(int64(q.Page-1) * int64(q.PageSize))
		opts.SetLimit(int64(q.PageSize))
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, mapStoreErr("find employees", err)
	}
	defer cursor.Close(ctx)

	employees := []*domain.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, 0, mapStoreErr("decode employees", err)
	}
	return employees, total, nil
}

// AverageSalaryByDepartment groups the collection by department and
// averages salaries, rounded to two decimals, sorted by department.
func (r *EmployeeRepository) AverageSalaryByDepartment(ctx context.Context) ([]domain.DepartmentSalary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$department",
			"avg_salary": bson.M{"$avg": "$salary"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"department": "$_id",
			"avg_salary": bson.M{"$round": bson.A{"$avg_salary", 2}},
		}}},
		{{Key: "$sort", Value: bson.M{"department": 1}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapStoreErr("aggregate salaries", err)
	}
	defer cursor.Close(ctx)

	rows := []domain.DepartmentSalary{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, mapStoreErr("decode salary aggregation", err)
	}
	return rows, nil
}

// EnsureIndexes creates the indexes the query paths rely on: a unique
// identifier index, the sort key, and the department equality filter.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}, {Key: "seq", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildEmployeeFilter translates the store-agnostic query spec into Mongo
// filter syntax. Department is an exact, case-sensitive equality match;
// skill matches any array element containing the term, case-insensitively.
// Both compose with AND; an empty query matches everything.
func buildEmployeeFilter(q ports.EmployeeQuery) bson.M {
	filter := bson.M{}
	if q.Department != "" {
		filter["department"] = q.Department
	}
	if q.Skill != "" {
		filter["skills"] = bson.M{"$regex": regexp.QuoteMeta(q.Skill), "$options": "i"}
	}
	return filter
}

// mapStoreErr normalizes driver failures: deadline hits become the typed
// store-timeout error so callers surface them as transient.
func mapStoreErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
