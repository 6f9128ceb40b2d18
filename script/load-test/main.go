// Command load-test drives the bank HTTP API with concurrent deposits and
// withdrawals and checks every account's final balance against the
// transactions the server accepted.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const password = "load-test-password"

// Scenario defines one kind of request the workers pick at random
type Scenario struct {
	Name   string
	Path   string
	Amount string
}

var scenarios = []Scenario{
	{"Deposit Small", "/account/deposit", "10.00"},
	{"Deposit Medium", "/account/deposit", "20.50"},
	{"Deposit Large", "/account/deposit", "30.00"},
	{"Withdraw Small", "/account/withdraw", "15.00"},
	{"Withdraw Medium", "/account/withdraw", "40.25"},
	{"Withdraw Large", "/account/withdraw", "60.00"},
}

// TestResult contains metrics for a single request
type TestResult struct {
	Username     string
	Scenario     Scenario
	Success      bool
	Rejected     bool // the bank answered with a business rejection (e.g. insufficient funds)
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	mu sync.Mutex

	TotalRequests int
	Accepted      int
	Rejected      int
	Failed        int
	TotalTime     time.Duration
	ResponseTimes []time.Duration
	ErrorCounts   map[string]int
	ScenarioStats map[string]int

	// Expected balance per account, summed from accepted transactions
	Expected map[string]decimal.Decimal
}

// NewTestStats creates empty statistics for total requests over usernames
func NewTestStats(total int, usernames []string) *TestStats {
	stats := &TestStats{
		TotalRequests: total,
		ResponseTimes: make([]time.Duration, 0, total),
		ErrorCounts:   make(map[string]int),
		ScenarioStats: make(map[string]int),
		Expected:      make(map[string]decimal.Decimal, len(usernames)),
	}
	for _, username := range usernames {
		stats.Expected[username] = decimal.Zero
	}
	return stats
}

// Record folds one result into the statistics
func (s *TestStats) Record(result TestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ScenarioStats[result.Scenario.Name]++
	s.ResponseTimes = append(s.ResponseTimes, result.ResponseTime)

	switch {
	case result.Success:
		s.Accepted++
		amount := decimal.RequireFromString(result.Scenario.Amount)
		if strings.HasSuffix(result.Scenario.Path, "withdraw") {
			amount = amount.Neg()
		}
		s.Expected[result.Username] = s.Expected[result.Username].Add(amount)
	case result.Rejected:
		s.Rejected++
	default:
		s.Failed++
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		s.ErrorCounts[errMsg]++
	}
}

// Completed returns the number of recorded results
func (s *TestStats) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Accepted + s.Rejected + s.Failed
}

// Percentile returns the p-th percentile (0..100) of sorted durations
func Percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func (c *apiClient) post(path, username string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	return c.http.Do(req)
}

func (c *apiClient) balance(username string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/account", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(username, password)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	var account struct {
		Balance string `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return "", err
	}
	return account.Balance, nil
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	accounts := flag.Int("u", 3, "Number of accounts to create and distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	client := &apiClient{
		baseURL: strings.TrimRight(*baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}

	usernames, err := createAccounts(client, *accounts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create accounts:", err)
		os.Exit(1)
	}

	fmt.Printf("Load testing API across %d accounts\n", len(usernames))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := NewTestStats(*totalRequests, usernames)

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			if completed := stats.Completed(); completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
		}
	}()

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *delayMs, usernames, jobs, stats)
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(startTime)

	printResults(stats)

	if !verifyBalances(client, stats) {
		os.Exit(1)
	}
}

func createAccounts(client *apiClient, n int) ([]string, error) {
	if n <= 0 {
		n = 1
	}

	run := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	usernames := make([]string, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("load%s%d", run, i)

		resp, err := client.post("/accounts", "", map[string]string{
			"username":  username,
			"password":  password,
			"firstName": "Load",
			"lastName":  fmt.Sprintf("Tester %d", i),
		})
		if err != nil {
			return nil, err
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("create %s: HTTP status code %d", username, resp.StatusCode)
		}
		usernames = append(usernames, username)
	}
	return usernames, nil
}

func worker(client *apiClient, delayMs int, usernames []string, jobs <-chan int, stats *TestStats) {
	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		username := usernames[rand.Intn(len(usernames))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		startTime := time.Now()
		resp, err := client.post(scenario.Path, username, map[string]string{"amount": scenario.Amount})
		result := TestResult{
			Username:     username,
			Scenario:     scenario,
			ResponseTime: time.Since(startTime),
		}

		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			result.Success = resp.StatusCode == http.StatusOK
			result.Rejected = resp.StatusCode == http.StatusUnprocessableEntity
			if !result.Success && !result.Rejected {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			resp.Body.Close()
		}

		stats.Record(result)
	}
}

func printResults(stats *TestStats) {
	sorted := append([]time.Duration(nil), stats.ResponseTimes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = total / time.Duration(len(sorted))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Accepted:            %d\n", stats.Accepted)
	fmt.Printf("Rejected by bank:    %d\n", stats.Rejected)
	fmt.Printf("Failed:              %d\n", stats.Failed)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("TPS:                 %.2f\n", float64(len(sorted))/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Minimum Response:    %v\n", sorted[0])
		fmt.Printf("Maximum Response:    %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50 Response:        %v\n", Percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", Percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", Percentile(sorted, 99))

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for _, scenario := range scenarios {
		fmt.Printf("%-16s: %d requests\n", scenario.Name, stats.ScenarioStats[scenario.Name])
	}

	if stats.Failed > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
}

// verifyBalances compares every server balance with the sum of accepted transactions
func verifyBalances(client *apiClient, stats *TestStats) bool {
	fmt.Println("\n----------------- BALANCE CHECK -----------------")

	ok := true
	for username, expected := range stats.Expected {
		actual, err := client.balance(username)
		if err != nil {
			fmt.Printf("%s: could not read balance: %v\n", username, err)
			ok = false
			continue
		}

		actualAmount, err := decimal.NewFromString(actual)
		if err != nil || !actualAmount.Equal(expected) {
			fmt.Printf("❌ %s: server balance %s, expected %s\n", username, actual, expected.String())
			ok = false
			continue
		}
		fmt.Printf("✅ %s: %s\n", username, actual)
	}
	return ok
}
