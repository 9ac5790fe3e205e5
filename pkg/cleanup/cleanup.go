package cleanup

import "log"

// Job is a named shutdown step, registered at startup and executed in
// registration order when the server stops.
type Job struct {
	Name string
	F    func() error
}

var jobs []*Job

func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs every registered job. A failing job is logged and the
// remaining jobs still run.
func CleanUp() {
	for _, j := range jobs {
		log.Printf("timely shutdown: running %s...", j.Name)
		if err := j.F(); err != nil {
			log.Printf("timely shutdown: %s failed: %v", j.Name, err)
			continue
		}
		log.Printf("timely shutdown: %s done", j.Name)
	}
}
