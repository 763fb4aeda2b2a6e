// Copyright (c) AgentCanvas Authors.
// Licensed under the MIT License.

/*
Package types 定义控制台核心的共享类型。

# 概述

types 包提供统一的结构化错误模型，供 workflow、layout、config
等各层复用。错误携带错误码与可选的步骤上下文，调用方可通过
GetErrorCode / IsCode 做程序化判断。

# 核心类型

  - ErrorCode — 统一错误码（DANGLING_REFERENCE、DUPLICATE_STEP_ID 等）
  - Error     — 结构化错误（Code + Message + StepID/Target + Cause）
*/
package types
