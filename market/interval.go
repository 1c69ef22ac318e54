package market

import "fmt"

// IntervalSeconds maps a bar-interval label to its length in seconds.
// Labels follow the data-provider vocabulary the rest of the system
// uses ("1m", "1h", "1d", ...).
func IntervalSeconds(interval string) (int64, error) {
	switch interval {
	case "1m":
		return 60, nil
	case "5m":
		return 300, nil
	case "15m":
		return 900, nil
	case "30m":
		return 1800, nil
	case "1h":
		return 3600, nil
	case "4h":
		return 14400, nil
	case "1d":
		return 86400, nil
	case "1wk":
		return 604800, nil
	case "1mo":
		return 2592000, nil
	default:
		return 0, fmt.Errorf("unsupported interval: %s", interval)
	}
}

// IntervalLabel is the inverse of IntervalSeconds for exact lengths.
func IntervalLabel(sec int64) (string, error) {
	if sec <= 0 {
		return "", fmt.Errorf("invalid interval seconds: %d", sec)
	}
	if sec < 3600 && sec%60 == 0 {
		return fmt.Sprintf("%dm", sec/60), nil
	}
	if sec < 86400 && sec%3600 == 0 {
		return fmt.Sprintf("%dh", sec/3600), nil
	}
	if sec%86400 == 0 {
		days := sec / 86400
		switch days {
		case 7:
			return "1wk", nil
		case 30:
			return "1mo", nil
		default:
			return fmt.Sprintf("%dd", days), nil
		}
	}
	return "", fmt.Errorf("cannot map interval: %d seconds", sec)
}
