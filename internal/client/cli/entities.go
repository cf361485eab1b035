package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

const (
	kindTask    = "task"
	kindService = "service"
)

var errUnknownKind = errors.New("unknown record kind, use task or service")

// kind binds one record type to its API resource, prompts and formatting.
type kind[T any] struct {
	name   string
	res    resource[T]
	prompt func(a *App) (T, error)
	format func(T) string
}

func (a *App) taskKind() kind[models.Task] {
	return kind[models.Task]{name: kindTask, res: a.tasks, prompt: promptTask, format: formatTask}
}

func (a *App) serviceKind() kind[models.Service] {
	return kind[models.Service]{name: kindService, res: a.services, prompt: promptService, format: formatService}
}

func promptTask(a *App) (models.Task, error) {
	id, err := GetUint(a.reader, "Enter task id", 64, a.out)
	if err != nil {
		return models.Task{}, err
	}
	name, err := GetSimpleText(a.reader, "Enter task name", a.out)
	if err != nil {
		return models.Task{}, err
	}
	completed, err := GetYesNo(a.reader, "Completed?", a.out)
	if err != nil {
		return models.Task{}, err
	}
	return models.Task{ID: id, Name: name, Completed: completed}, nil
}

func formatTask(t models.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("%6d [%s] %s", t.ID, mark, t.Name)
}

func promptService(a *App) (models.Service, error) {
	id, err := GetUint(a.reader, "Enter service id", 64, a.out)
	if err != nil {
		return models.Service{}, err
	}
	name, err := GetSimpleText(a.reader, "Enter service name", a.out)
	if err != nil {
		return models.Service{}, err
	}
	price, err := GetFloat(a.reader, "Enter price", a.out)
	if err != nil {
		return models.Service{}, err
	}
	duration, err := GetUint(a.reader, "Enter duration (minutes)", 32, a.out)
	if err != nil {
		return models.Service{}, err
	}
	return models.Service{ID: id, Name: name, Price: price, Duration: uint32(duration)}, nil
}

func formatService(s models.Service) string {
	return fmt.Sprintf("%6d %-30s %10.2f %5d min", s.ID, s.Name, s.Price, s.Duration)
}

// dispatch runs the task or service variant of a command.
func (a *App) dispatch(name string, task func(kind[models.Task]) error, service func(kind[models.Service]) error) error {
	switch name {
	case kindTask:
		return task(a.taskKind())
	case kindService:
		return service(a.serviceKind())
	default:
		a.printf("%v", errUnknownKind)
		return errUnknownKind
	}
}

func (a *App) List(ctx context.Context, name string) error {
	return a.dispatch(name,
		func(k kind[models.Task]) error { return listRecords(ctx, a, k) },
		func(k kind[models.Service]) error { return listRecords(ctx, a, k) })
}

func (a *App) Show(ctx context.Context, name string) error {
	return a.dispatch(name,
		func(k kind[models.Task]) error { return showRecord(ctx, a, k) },
		func(k kind[models.Service]) error { return showRecord(ctx, a, k) })
}

func (a *App) Add(ctx context.Context, name string) error {
	return a.dispatch(name,
		func(k kind[models.Task]) error { return addRecord(ctx, a, k) },
		func(k kind[models.Service]) error { return addRecord(ctx, a, k) })
}

func (a *App) Update(ctx context.Context, name string) error {
	return a.dispatch(name,
		func(k kind[models.Task]) error { return updateRecord(ctx, a, k) },
		func(k kind[models.Service]) error { return updateRecord(ctx, a, k) })
}

func (a *App) Delete(ctx context.Context, name string) error {
	return a.dispatch(name,
		func(k kind[models.Task]) error { return deleteRecord(ctx, a, k) },
		func(k kind[models.Service]) error { return deleteRecord(ctx, a, k) })
}

func listRecords[T any](ctx context.Context, a *App, k kind[T]) error {
	all, err := k.res.List(ctx)
	if err != nil {
		a.printf("Failed to list %ss: %v", k.name, err)
		return err
	}
	if len(all) == 0 {
		a.printf("No %ss", k.name)
		return nil
	}
	for _, v := range all {
		a.printf("%s", k.format(v))
	}
	return nil
}

func showRecord[T any](ctx context.Context, a *App, k kind[T]) error {
	id, err := GetUint(a.reader, "Enter "+k.name+" id", 64, a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}
	v, err := k.res.Get(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.printf("No %s with id %d", k.name, id)
		} else {
			a.printf("Failed to fetch %s: %v", k.name, err)
		}
		return err
	}
	a.printf("%s", k.format(*v))
	return nil
}

func addRecord[T any](ctx context.Context, a *App, k kind[T]) error {
	v, err := k.prompt(a)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}
	if err := k.res.Create(ctx, v); err != nil {
		a.printf("Failed to add %s: %v", k.name, err)
		return err
	}
	a.printf("%s saved", k.name)
	return nil
}

func updateRecord[T any](ctx context.Context, a *App, k kind[T]) error {
	v, err := k.prompt(a)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}
	if err := k.res.Update(ctx, v); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.printf("No such %s", k.name)
		} else {
			a.printf("Failed to update %s: %v", k.name, err)
		}
		return err
	}
	a.printf("%s updated", k.name)
	return nil
}

func deleteRecord[T any](ctx context.Context, a *App, k kind[T]) error {
	id, err := GetUint(a.reader, "Enter "+k.name+" id", 64, a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}
	if err := k.res.Delete(ctx, id); err != nil {
		a.printf("Failed to delete %s: %v", k.name, err)
		return err
	}
	a.printf("%s %d deleted", k.name, id)
	return nil
}
