package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/limaJavier/allocation/pkg/annealing"
	"github.com/limaJavier/allocation/pkg/marking"
	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
)

const (
	resultsFile      = "benchmark_results.csv"
	seedsPerConfig   = 3
	extraMarkers     = 2
	avoidProbability = 0.1
)

var expertiseAreas = []string{"ai", "systems", "theory", "security", "graphics", "databases", "hci", "networks"}

type InstanceMetadata struct {
	Name     string
	Rooms    int
	Markers  int
	Students int
	Seed     int64
}

type ScheduleMetadata struct {
	Alpha      float64
	Iterations int
}

type BenchmarkResult struct {
	Instance   InstanceMetadata
	Schedule   ScheduleMetadata
	Seed       int64
	Duration   int64
	Score      int
	Violations int
	Proposals  int64
	Accepted   int64
	Success    bool
}

func main() {
	instances := getInstances()
	schedules := getSchedules()
	results := make([]BenchmarkResult, 0, len(instances)*len(schedules)*seedsPerConfig)

	for _, instance := range instances {
		for _, schedule := range schedules {
			for seed := range int64(seedsPerConfig) {
				log.Infof("Benchmarking instance \"%v\" with alpha \"%v\", iterations \"%v\" and seed \"%v\"", instance.Name, schedule.Alpha, schedule.Iterations, seed+1)
				results = append(results, measure(instance, schedule, seed+1))
			}
		}
	}

	toCsv(results)
}

func getInstances() []InstanceMetadata {
	return []InstanceMetadata{
		{Name: "small", Rooms: 4, Students: 24, Seed: 11},
		{Name: "medium", Rooms: 8, Students: 60, Seed: 23},
		{Name: "large", Rooms: 16, Students: 140, Seed: 37},
	}
}

func getSchedules() []ScheduleMetadata {
	return []ScheduleMetadata{
		{Alpha: 0.9, Iterations: 10},
		{Alpha: 0.95, Iterations: 20},
		{Alpha: 0.98, Iterations: 20},
		{Alpha: 0.99, Iterations: 40},
	}
}

// Builds a department of markers and supervised students. Every other marker is academic,
// every second academic supervises the PhD of the marker after it and a few students avoid a random marker
func generateInstance(metadata InstanceMetadata) ([]*marking.Marker, []*marking.Student) {
	source := random.NewSource(metadata.Seed)
	markerCount := metadata.Rooms*marking.MarkersPerRoom + extraMarkers

	markers := lo.Times(markerCount, func(i int) *marking.Marker {
		return &marking.Marker{
			Id:          fmt.Sprintf("m%v", i+1),
			Expertise:   random.Choose(source, expertiseAreas, 1+source.Intn(2)),
			PhdStudents: []string{},
			Academic:    i%2 == 0,
			NotMarkWith: []string{},
		}
	})
	for i := 0; i+1 < len(markers); i += 4 {
		markers[i].PhdStudents = append(markers[i].PhdStudents, markers[i+1].Id)
	}

	students := lo.Times(metadata.Students, func(i int) *marking.Student {
		supervisor := markers[source.Intn(len(markers))]
		student := &marking.Student{
			Id:           fmt.Sprintf("s%v", i+1),
			Supervisor:   supervisor.Id,
			MarkerAvoid:  []string{},
			FixedMarkers: []string{},
		}
		if source.Float64() < avoidProbability {
			if avoided, ok := random.Sample(source, markers); ok && avoided != supervisor {
				student.MarkerAvoid = append(student.MarkerAvoid, avoided.Id)
			}
		}
		return student
	})

	return markers, students
}

func measure(instance InstanceMetadata, schedule ScheduleMetadata, seed int64) BenchmarkResult {
	markers, students := generateInstance(instance)
	instance.Markers = len(markers)

	options := annealing.DefaultOptions()
	options.Alpha = schedule.Alpha
	options.Iterations = schedule.Iterations

	scope := tally.NewTestScope("", map[string]string{})
	allocator, err := marking.NewRoomAllocator(marking.DefaultScores(), options, random.NewSource(seed), progress.Nop, scope)
	if err != nil {
		log.Fatalf("cannot create allocator for schedule %+v: %v", schedule, err)
	}

	start := time.Now()
	allocation := allocator.Allocate(markers, students, instance.Rooms)
	duration := time.Since(start).Milliseconds()

	result := BenchmarkResult{
		Instance: instance,
		Schedule: schedule,
		Seed:     seed,
		Duration: duration,
		Success:  allocation.Success,
	}
	if !allocation.Success {
		log.Warnf("instance \"%v\" could not be allocated: %v", instance.Name, allocation.Err())
		return result
	}

	counters := scope.Snapshot().Counters()
	result.Score = marking.ScoreRoomAllocation(allocation.Allocation, marking.DefaultScores())
	result.Violations = len(marking.Violations(allocation.Allocation))
	result.Proposals = counterValue(counters, "proposals+")
	result.Accepted = counterValue(counters, "accepted+kind=better") + counterValue(counters, "accepted+kind=worse")
	return result
}

func counterValue(counters map[string]tally.CounterSnapshot, key string) int64 {
	if counter, ok := counters[key]; ok {
		return counter.Value()
	}
	return 0
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header()); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}
	for _, result := range results {
		if err := writer.Write(toRecord(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func header() []string {
	return []string{"Instance", "Rooms", "Markers", "Students", "Alpha", "Iterations", "Seed", "Duration(ms)", "Score", "Violations", "Proposals", "Accepted(%)", "Success"}
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Instance.Name,
		fmt.Sprintf("%d", result.Instance.Rooms),
		fmt.Sprintf("%d", result.Instance.Markers),
		fmt.Sprintf("%d", result.Instance.Students),
		strconv.FormatFloat(result.Schedule.Alpha, 'f', -1, 64),
		fmt.Sprintf("%d", result.Schedule.Iterations),
		fmt.Sprintf("%d", result.Seed),
		fmt.Sprintf("%d", result.Duration),
		fmt.Sprintf("%d", result.Score),
		fmt.Sprintf("%d", result.Violations),
		fmt.Sprintf("%d", result.Proposals),
		acceptance(result.Accepted, result.Proposals),
		fmt.Sprintf("%v", result.Success),
	}
}

func acceptance(accepted int64, proposals int64) string {
	if proposals == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(accepted)*100/float64(proposals))
}
