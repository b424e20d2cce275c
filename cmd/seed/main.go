// Command seed enqueues ingest tasks for source URLs, and can return a
// terminally failed task to the pipeline. It is the external trigger the
// orchestrator itself never performs.
//
//	seed -config config.yaml https://example.com/a https://example.com/b
//	seed -config config.yaml -requeue <task-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"newsroom-agents/internal/config"
	"newsroom-agents/internal/domain/model"
	pg "newsroom-agents/internal/infra/db/postgres"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	requeue := flag.String("requeue", "", "task id to return to pending")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.InitSchema(ctx, pool); err != nil {
		log.Fatalf("schema init: %v", err)
	}

	tasks := pg.NewTaskRepo(pool)

	if *requeue != "" {
		if err := tasks.Requeue(ctx, nil, *requeue); err != nil {
			log.Fatalf("requeue %s: %v", *requeue, err)
		}
		fmt.Printf("task %s returned to pending\n", *requeue)
		return
	}

	urls := flag.Args()
	if len(urls) == 0 {
		log.Fatal("nothing to do: pass source URLs or -requeue <task-id>")
	}
	for _, u := range urls {
		task, err := model.NewTask(model.TaskKindIngest, u)
		if err != nil {
			log.Fatalf("task for %q: %v", u, err)
		}
		if err := tasks.Save(ctx, nil, task); err != nil {
			log.Fatalf("save task for %q: %v", u, err)
		}
		fmt.Printf("enqueued ingest task %s for %s\n", task.ID, u)
	}
}
