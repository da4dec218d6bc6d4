package main

import (
	"log"

	"github.com/hearthplan/diy-backend/config"
	"github.com/hearthplan/diy-backend/internal/storage/postgres"
)

// migrations run in order; each statement is idempotent so the command can
// be re-run safely.
var migrations = []string{
	`create extension if not exists "pgcrypto";`,

	`create table if not exists project_templates (
	id uuid primary key default gen_random_uuid(),
	name text not null,
	description text not null default '',
	difficulty text not null check (difficulty in ('beginner', 'intermediate', 'advanced')),
	estimated_hours integer not null check (estimated_hours between 1 and 48),
	category text not null,
	visibility text not null default 'public' check (visibility in ('public', 'private')),
	status text not null default 'draft' check (status in ('draft', 'published', 'archived')),
	created_by text not null,
	version integer not null default 1,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);`,

	`create index if not exists idx_templates_rate_limit
	on project_templates (created_by, created_at)
	where visibility = 'private';`,

	`create index if not exists idx_templates_browse
	on project_templates (created_at desc)
	where visibility = 'public' and status = 'published';`,

	`create table if not exists project_instances (
	id uuid primary key default gen_random_uuid(),
	template_id uuid not null references project_templates (id),
	user_id text not null,
	title text not null,
	description text,
	status text not null default 'active' check (status in ('active', 'completed')),
	started_at timestamptz not null default now(),
	completed_at timestamptz,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);`,

	`create index if not exists idx_instances_user on project_instances (user_id, started_at desc);`,

	`create table if not exists tools_and_materials (
	id uuid primary key default gen_random_uuid(),
	name text not null,
	category text,
	unit text,
	description text,
	user_id text not null,
	created_at timestamptz not null default now()
);`,

	`create table if not exists template_tools_and_materials (
	template_id uuid not null references project_templates (id),
	item_id uuid not null references tools_and_materials (id),
	quantity integer not null default 1,
	unit text not null default 'piece',
	required boolean not null default true,
	created_at timestamptz not null default now(),
	primary key (template_id, item_id)
);`,

	`create table if not exists user_instance_tasks (
	id uuid primary key default gen_random_uuid(),
	instance_id uuid not null references project_instances (id),
	title text not null,
	description text,
	order_index integer not null,
	completed boolean not null default false,
	completed_at timestamptz,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);`,

	`create index if not exists idx_tasks_instance on user_instance_tasks (instance_id, order_index);`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration %d failed: %v", i+1, err)
		}
	}

	log.Printf("applied %d migrations", len(migrations))
}
