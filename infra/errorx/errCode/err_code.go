package errCode

// 错误码
type Code int

const (
	OK               Code = iota
	EMPTY_VALUE           // 输入为空
	INVALID_VALUE         // 参数或数值非法
	INVALID_INPUT         // 输入序列不满足估计前提
	DID_NOT_CONVERGE      // 优化器未收敛
	DEGENERATE_PATH       // 参数路径出现非正scale或非有限值
	IO_FAILURE            // 文件读写失败
	PARSE_FAILURE         // 数据解析失败
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case EMPTY_VALUE:
		return "EMPTY_VALUE"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_INPUT:
		return "INVALID_INPUT"
	case DID_NOT_CONVERGE:
		return "DID_NOT_CONVERGE"
	case DEGENERATE_PATH:
		return "DEGENERATE_PATH"
	case IO_FAILURE:
		return "IO_FAILURE"
	case PARSE_FAILURE:
		return "PARSE_FAILURE"
	default:
		return "UNKNOWN"
	}
}
